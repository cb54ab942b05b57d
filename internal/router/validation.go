package router

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// registerValidators installs custom binding rules. futuredate accepts a
// YYYY-MM-DD value that is today or later.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterValidation("futuredate", func(fl validator.FieldLevel) bool {
			date, err := time.Parse("2006-01-02", fl.Field().String())
			if err != nil {
				return false
			}
			today, _ := time.Parse("2006-01-02", time.Now().Format("2006-01-02"))
			return !date.Before(today)
		})
	})
}
