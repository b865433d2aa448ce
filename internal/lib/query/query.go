// Package query lê parâmetros de query string e devolve erros de validação padronizados.
package query

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"registro-os/internal/lib/apperr"
)

const DateLayout = "2006-01-02"

func String(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}

func Int(r *http.Request, name string, def int) (int, error) {
	raw := String(r, name)
	if raw == "" {
		return def, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalid(name, raw, "inteiro")
	}
	return v, nil
}

func Int64(r *http.Request, name string) (int64, error) {
	raw := String(r, name)
	if raw == "" {
		return 0, nil
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, invalid(name, raw, "inteiro")
	}
	return v, nil
}

// Date aceita AAAA-MM-DD no fuso local; vazio devolve tempo zero.
func Date(r *http.Request, name string) (time.Time, error) {
	raw := String(r, name)
	if raw == "" {
		return time.Time{}, nil
	}

	v, err := time.ParseInLocation(DateLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, invalid(name, raw, "data AAAA-MM-DD")
	}
	return v, nil
}

func invalid(name, raw, want string) error {
	return apperr.Validation(
		fmt.Sprintf("%s: valor %q inválido, esperado %s", name, raw, want),
		map[string]interface{}{"fields": []map[string]interface{}{{"field": name, "message": "esperado " + want}}},
	)
}
