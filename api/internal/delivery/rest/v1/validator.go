package v1

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"walletwatch/api/internal/domain"
	"walletwatch/pkg/utils"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterValidation("eth_addr", validateEthAddress)
	v.RegisterValidation("alert_type", validateAlertType)
	v.RegisterValidation("decimal", validateDecimal)

	return v
}

func validateEthAddress(fl validator.FieldLevel) bool {
	return common.IsHexAddress(fl.Field().String())
}

func validateAlertType(fl validator.FieldLevel) bool {
	return domain.AlertType(fl.Field().String()).IsValid()
}

// empty is allowed, balance_change alerts carry no threshold
func validateDecimal(fl validator.FieldLevel) bool {
	if fl.Field().String() == "" {
		return true
	}
	_, err := decimal.NewFromString(fl.Field().String())
	return err == nil
}

// bindJSON decodes the body into data and validates it.
// returns false if the response was already written
func (h *Handler) bindJSON(c *gin.Context, data any) bool {
	if err := c.ShouldBindJSON(data); err != nil {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
		h.log.Debug("bind json error: " + err.Error())
		return false
	}
	return h.validateStruct(c, data)
}

func (h *Handler) bindQuery(c *gin.Context, data any) bool {
	if err := c.ShouldBindQuery(data); err != nil {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
		h.log.Debug("bind query error: " + err.Error())
		return false
	}
	return h.validateStruct(c, data)
}

func (h *Handler) validateStruct(c *gin.Context, data any) bool {
	err := h.validate.Struct(data)
	if err == nil {
		return true
	}

	validationErrs, err := utils.SafeCast[validator.ValidationErrors](err)
	if err != nil || len(validationErrs) == 0 {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
		return false
	}

	responseErr(c, http.StatusBadRequest, formatValidationErr(data, validationErrs[0]), "")
	return false
}

func formatValidationErr(data any, err validator.FieldError) string {
	jsonTag := getJSONTag(data, err.StructField())

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("field '%s' is required", jsonTag)
	case "max":
		return fmt.Sprintf("field '%s' must be at most %s characters long", jsonTag, err.Param())
	case "gte":
		return fmt.Sprintf("field '%s' must be greater than or equal to %s", jsonTag, err.Param())
	case "lte":
		return fmt.Sprintf("field '%s' must be less than or equal to %s", jsonTag, err.Param())
	//  custom tags
	case "eth_addr":
		return fmt.Sprintf("field '%s' must be a valid ethereum address", jsonTag)
	case "alert_type":
		types := make([]string, 0, len(domain.AlertTypes))
		for _, t := range domain.AlertTypes {
			types = append(types, string(t))
		}
		return fmt.Sprintf("field '%s' must be one of '%s'", jsonTag, strings.Join(types, " "))
	case "decimal":
		return fmt.Sprintf("field '%s' must be a decimal number", jsonTag)
	default:
		return fmt.Sprintf("invalid field '%s'", jsonTag)
	}
}

func getJSONTag(structType any, fieldName string) string {
	typ := reflect.TypeOf(structType)
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	field, _ := typ.FieldByName(fieldName)
	tag, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if tag == "" {
		tag, _, _ = strings.Cut(field.Tag.Get("form"), ",")
	}
	if tag == "" {
		return fieldName
	}
	return tag
}
