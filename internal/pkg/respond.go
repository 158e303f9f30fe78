package pkg

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type errorItem struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorBody struct {
	Errors []errorItem `json:"errors"`
}

// Fail 统一错误出口：校验错误逐字段展开，AppError 原样映射，
// 其余一律 500 且不泄露内部细节
func Fail(c *gin.Context, err error) {
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		items := make([]errorItem, 0, len(vErrs))
		for _, fe := range vErrs {
			items = append(items, errorItem{
				Status:  http.StatusBadRequest,
				Code:    CodeValidation,
				Message: "invalid field: " + fe.Field(),
			})
		}
		log.Printf("WARN validation failed path=%s fields=%d", c.FullPath(), len(items))
		c.AbortWithStatusJSON(http.StatusBadRequest, errorBody{Errors: items})
		return
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Status >= http.StatusInternalServerError {
			log.Printf("ERROR %s path=%s err=%v", appErr.Code, c.FullPath(), err)
		} else {
			log.Printf("WARN %s path=%s", appErr.Code, c.FullPath())
		}
		c.AbortWithStatusJSON(appErr.Status, errorBody{Errors: []errorItem{
			{Status: appErr.Status, Code: appErr.Code, Message: appErr.Message},
		}})
		return
	}

	log.Printf("ERROR unclassified path=%s err=%v", c.FullPath(), err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody{Errors: []errorItem{
		{Status: http.StatusInternalServerError, Code: CodeInternal, Message: "internal error"},
	}})
}
