package zabbix

import (
	"fmt"

	"codeberg.org/mutker/zbxreport/internal/errors"
)

const (
	ErrInvalidConfig  = errors.ErrInvalidConfig
	ErrAuthentication = errors.ErrAuthentication
	ErrLogout         = errors.ErrLogout

	ErrRequestFailed  = errors.ErrorCode("zabbix_request_failed")
	ErrBadStatus      = errors.ErrorCode("zabbix_bad_http_status")
	ErrDecodeResponse = errors.ErrorCode("zabbix_decode_failed")
	ErrRemote         = errors.ErrorCode("zabbix_api_error")
)

// APIError is an error object returned by the JSON-RPC endpoint.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data"`
}

func (e *APIError) Error() string {
	if e.Data == "" {
		return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
	}

	return fmt.Sprintf("%s %s (code %d)", e.Message, e.Data, e.Code)
}
