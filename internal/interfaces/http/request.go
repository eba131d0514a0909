package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ti/internal/application/dto"
	"github.com/jhoicas/inventario-ti/internal/domain"
	"github.com/jhoicas/inventario-ti/internal/domain/repository"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Mensagens usam o nome do campo no JSON (ou na query).
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// parseBody decodifica o JSON de forma estrita (campos desconhecidos são recusados) e valida as tags.
func parseBody(c *fiber.Ctx, dst any) error {
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return domain.Invalid("corpo da requisição vazio")
	}
	return decodeStrict(body, dst)
}

// parseFormAsJSON lê os campos de texto de um multipart como um objeto JSON e segue as regras de parseBody.
// Os campos em numeric vão como número (vazios são omitidos); os demais como string.
func parseFormAsJSON(c *fiber.Ctx, dst any, numeric ...string) error {
	form, err := c.MultipartForm()
	if err != nil {
		return domain.Invalid("formulário multipart inválido")
	}
	obj := make(map[string]any, len(form.Value))
	for key, vals := range form.Value {
		if len(vals) == 0 {
			continue
		}
		v := strings.TrimSpace(vals[0])
		if !slices.Contains(numeric, key) {
			obj[key] = vals[0]
			continue
		}
		if v == "" {
			continue
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return domain.Invalid("%s deve ser numérico", key)
		}
		obj[key] = json.Number(v)
	}
	body, err := json.Marshal(obj)
	if err != nil {
		return domain.Invalid("formulário inválido: %v", err)
	}
	return decodeStrict(body, dst)
}

func decodeStrict(body []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return domain.Invalid("corpo inválido: %s", jsonErrorMessage(err))
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return domain.Invalid("corpo inválido: conteúdo extra após o JSON")
	}
	return validateStruct(dst)
}

// parseQuery lê a query string em dst (tags query) e valida.
func parseQuery(c *fiber.Ctx, dst any) error {
	if err := c.QueryParser(dst); err != nil {
		return domain.Invalid("parâmetros inválidos: %v", err)
	}
	return validateStruct(dst)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.Invalid("%v", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return domain.Invalid("%s", strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " é obrigatório"
	case "email":
		return field + " deve ser um email válido"
	case "oneof":
		return fmt.Sprintf("%s deve ser um de: %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s deve ser maior que %s", field, fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s deve ter no mínimo %s caracteres", field, fe.Param())
		}
		return fmt.Sprintf("%s deve ser no mínimo %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s deve ter no máximo %s caracteres", field, fe.Param())
		}
		return fmt.Sprintf("%s deve ser no máximo %s", field, fe.Param())
	}
	return fmt.Sprintf("%s inválido (%s)", field, fe.Tag())
}

func jsonErrorMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("campo %s deve ser do tipo %s", typeErr.Field, typeErr.Type.String())
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return fmt.Sprintf("JSON malformado na posição %d", syntaxErr.Offset)
	}
	return err.Error()
}

// parsePeriod converte startDate/endDate da query. Uma data sem hora em endDate cobre o dia inteiro.
func parsePeriod(start, end string) (repository.DateRange, error) {
	var p repository.DateRange
	if start = strings.TrimSpace(start); start != "" {
		t, err := dto.ParseDate(start)
		if err != nil {
			return p, domain.Invalid("startDate inválida: %s", start)
		}
		p.Start = &t
	}
	if end = strings.TrimSpace(end); end != "" {
		t, err := dto.ParseDate(end)
		if err != nil {
			return p, domain.Invalid("endDate inválida: %s", end)
		}
		if len(end) == len("2006-01-02") {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		p.End = &t
	}
	if p.Start != nil && p.End != nil && p.End.Before(*p.Start) {
		return p, domain.Invalid("endDate anterior a startDate")
	}
	return p, nil
}
