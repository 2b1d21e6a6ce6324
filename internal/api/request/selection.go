// Package request decodes and validates HTTP request input.
package request

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/apperrors"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/validation"
)

// maxBodyBytes bounds request bodies; every payload here is a handful of fields.
const maxBodyBytes = 1 << 16

// SetCurrencyRequest selects a source or target currency.
type SetCurrencyRequest struct {
	Code string `json:"code" validate:"required,len=3,alpha,uppercase"`
}

// SetAPIKeyRequest stores the provider API key.
type SetAPIKeyRequest struct {
	APIKey string `json:"apiKey" validate:"required,min=8,max=256"`
}

// Decode reads a JSON body into dst and runs its validation tags.
// Currency codes are upper-cased before validation.
func Decode(r *http.Request, dst any) error {
	body := io.LimitReader(r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidRequestBody, err)
	}

	if req, ok := dst.(*SetCurrencyRequest); ok {
		req.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	}

	return validation.ValidateStruct(dst)
}

// ParseAmount parses the amount query parameter.
func ParseAmount(amountParam string) (float64, error) {
	return validation.ParseAmount(amountParam)
}

// ParsePersist parses the optional persist query parameter (default false).
func ParsePersist(persistParam string) (bool, error) {
	if persistParam == "" {
		return false, nil
	}
	persist, err := strconv.ParseBool(persistParam)
	if err != nil {
		return false, fmt.Errorf("%w: persist=%s", apperrors.ErrInvalidQueryParam, persistParam)
	}
	return persist, nil
}
