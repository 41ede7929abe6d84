package errors

import "net/http"

// HTTPStatus maps an error to the status code the API responds with.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	switch TypeOf(err) {
	case ErrorTypeValidation:
		return http.StatusBadRequest
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeUnauthorized:
		return http.StatusUnauthorized
	case ErrorTypeUnavailable, ErrorTypeCircuitOpen:
		return http.StatusServiceUnavailable
	case ErrorTypeRemote:
		return http.StatusBadGateway
	case ErrorTypeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Response is the JSON body written for failed requests.
type Response struct {
	Error   string    `json:"error"`
	Type    ErrorType `json:"type"`
	Code    string    `json:"code,omitempty"`
	Details string    `json:"details,omitempty"`
}

// ToResponse converts err into its public representation. Internal details of
// foreign errors are not exposed.
func ToResponse(err error) Response {
	var unifiedErr *UnifiedError
	if As(err, &unifiedErr) {
		resp := Response{Error: unifiedErr.Message, Type: unifiedErr.Type, Code: unifiedErr.Code}
		if unifiedErr.Type != ErrorTypeInternal {
			resp.Details = unifiedErr.Details
		}
		return resp
	}
	return Response{Error: "internal error", Type: ErrorTypeInternal}
}
