package builtins

import (
	"math/rand"
	"time"
)

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

func randomFloat() float64 {
	return rand.Float64()
}
