package middleware

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	pkgvalidator "github.com/jwalitptl/practice-dashboard/pkg/validator"
)

// RegisterBindingRules installs the dashboard form rules and json field
// names on gin's binding validator.
func RegisterBindingRules() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return pkgvalidator.Register(v)
}
