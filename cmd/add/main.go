package main

import (
	"fmt"
	"os"

	"github.com/fakhrymubarak/weather-report/internal/sum"
)

func main() {
	fmt.Println(sum.AddAll(os.Args[1:]).String())
}
