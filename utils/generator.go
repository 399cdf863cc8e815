package utils

import (
	"crypto/rand"
	"fmt"
)

func GenerateOTP() string {
	// 4-digit OTP
	var number [1]byte
	rand.Read(number[:])
	return fmt.Sprintf("%04d", int(number[0])%10000)
}
