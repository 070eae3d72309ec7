package validator

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	hexBytesRe = regexp.MustCompile(`^0x([0-9a-fA-F]{2})*$`)
	maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	initOnce   sync.Once
)

// Init registers the chain-specific tags on gin's validator engine.
func Init() {
	initOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("hexbytes", isHexBytes)
			_ = v.RegisterValidation("uint256", isUint256)
		}
	})
}

// isHexBytes accepts 0x-prefixed, even-length hex, including the empty "0x".
func isHexBytes(fl validator.FieldLevel) bool {
	return hexBytesRe.MatchString(fl.Field().String())
}

// isUint256 accepts a base-10 string that fits in a uint256.
func isUint256(fl validator.FieldLevel) bool {
	return IsUint256(fl.Field().String())
}

func IsUint256(s string) bool {
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return false
	}
	n, ok := new(big.Int).SetString(s, 10)
	return ok && n.Cmp(maxUint256) <= 0
}

// GetErrorMsg translates validation errors into user-friendly messages
func GetErrorMsg(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var errMsgs []string
		for _, e := range validationErrors {
			field := e.Field()
			tag := e.Tag()
			param := e.Param()

			switch tag {
			case "required":
				errMsgs = append(errMsgs, fmt.Sprintf("%s is required", field))
			case "eth_addr":
				errMsgs = append(errMsgs, fmt.Sprintf("%s must be a 0x-prefixed 20 byte address", field))
			case "hexbytes":
				errMsgs = append(errMsgs, fmt.Sprintf("%s must be 0x-prefixed hex", field))
			case "uint256":
				errMsgs = append(errMsgs, fmt.Sprintf("%s must be a base-10 unsigned integer string", field))
			case "min", "gte":
				errMsgs = append(errMsgs, fmt.Sprintf("%s must be at least %s", field, param))
			case "oneof":
				errMsgs = append(errMsgs, fmt.Sprintf("%s must be one of [%s]", field, param))
			default:
				errMsgs = append(errMsgs, fmt.Sprintf("%s failed validation (%s)", field, tag))
			}
		}
		return strings.Join(errMsgs, "; ")
	}
	return "malformed JSON body"
}
