package estimator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"unicode"

	"github.com/cleberrangel/edge-relay-api/internal/model"
	"github.com/go-playground/validator/v10"
)

// MsgInvalidJSON é devolvido quando o corpo não é JSON
const MsgInvalidJSON = "Invalid JSON body"

// MsgDeadlineTimeRequired é devolvido quando deadline=custom vem sem deadlineTime
const MsgDeadlineTimeRequired = `deadlineTime is required when deadline is "custom"`

// validate lê a tag "binding" de model.EstimatorRequest; a regra "enum"
// delega para model.Enum.Valid, que é a única fonte dos valores aceitos.
var validate = func() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	if err := v.RegisterValidation("enum", validEnum); err != nil {
		panic(err)
	}
	return v
}()

func validEnum(fl validator.FieldLevel) bool {
	e, ok := fl.Field().Interface().(model.Enum)
	return ok && e.Valid()
}

// DecodeRequest decodifica exatamente um objeto JSON e aplica Validate.
// Bytes após o objeto tornam o corpo inválido.
func DecodeRequest(r io.Reader) (*model.EstimatorRequest, error) {
	var req model.EstimatorRequest

	dec := json.NewDecoder(r)
	if err := dec.Decode(&req); err != nil {
		return nil, BindError(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, model.NewClientInput(MsgInvalidJSON)
	}

	if err := Validate(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// Validate aplica as regras de schema e a regra de deadlineTime
func Validate(req *model.EstimatorRequest) error {
	if err := validate.Struct(req); err != nil {
		return BindError(err)
	}
	return CheckDeadline(req)
}

// CheckDeadline exige deadlineTime não vazio quando deadline=custom
func CheckDeadline(req *model.EstimatorRequest) error {
	if req.Deadline == model.DeadlineCustom && (req.DeadlineTime == nil || *req.DeadlineTime == "") {
		return model.NewClientInput(MsgDeadlineTimeRequired)
	}
	return nil
}

// BindError converte erros de decode/validação em *model.APIError com os problemas agrupados por campo.
func BindError(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		issues := model.NewIssues()
		for _, fe := range fieldErrs {
			issues.AddField(jsonName(fe.Field()), fieldMessage(fe))
		}
		return model.NewInvalidPayload(issues)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		issues := model.NewIssues()
		msg := fmt.Sprintf("Expected %s, received %s", expectedKind(typeErr.Type), typeErr.Value)
		if typeErr.Field == "" {
			issues.AddForm(msg)
		} else {
			issues.AddField(typeErr.Field, msg)
		}
		return model.NewInvalidPayload(issues)
	}

	return model.NewClientInput(MsgInvalidJSON)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "enum":
		var opts []string
		if e, ok := fe.Value().(model.Enum); ok {
			for _, o := range e.Options() {
				opts = append(opts, "'"+o+"'")
			}
		}
		return fmt.Sprintf("Invalid enum value. Expected %s, received '%v'", strings.Join(opts, " | "), fe.Value())
	default:
		return fmt.Sprintf("Failed on %s", fe.Tag())
	}
}

func expectedKind(t reflect.Type) string {
	if t == nil {
		return "unknown"
	}
	switch t.Kind() {
	case reflect.Struct, reflect.Map:
		return "object"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Ptr:
		return expectedKind(t.Elem())
	default:
		return t.Kind().String()
	}
}

// jsonName converte o nome Go do campo ("TaskType") para o nome JSON ("taskType")
func jsonName(field string) string {
	if field == "" {
		return field
	}
	r := []rune(field)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
