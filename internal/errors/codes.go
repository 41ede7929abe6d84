package errors

// Error codes used across the service.
const (
	CodeWrapped = "WRAP_ERROR"

	CodeInvalidEntity  = "INVALID_ENTITY"
	CodeInvalidIndex   = "INVALID_INDEX"
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeEntityNotFound = "ENTITY_NOT_FOUND"
	CodeStoreNotReady  = "STORE_NOT_READY"
	CodeStoreClosed    = "STORE_CLOSED"
	CodeAdminDisabled  = "ADMIN_DISABLED"
	CodeBadCredentials = "BAD_CREDENTIALS"
	CodeRemoteMissing  = "REMOTE_NOT_CONFIGURED"
	CodeRemoteSelect   = "REMOTE_SELECT_FAILED"
	CodeRemoteInsert   = "REMOTE_INSERT_FAILED"
	CodeRemoteUpdate   = "REMOTE_UPDATE_FAILED"
	CodeRemoteDelete   = "REMOTE_DELETE_FAILED"
	CodeRemoteTimeout  = "REMOTE_TIMEOUT"
	CodeBreakerOpen    = "BREAKER_OPEN"
	CodeMediaRejected  = "MEDIA_REJECTED"
	CodeMediaTooLarge  = "MEDIA_TOO_LARGE"
	CodeMediaUpload    = "MEDIA_UPLOAD_FAILED"
	CodeMediaMissing   = "MEDIA_NOT_CONFIGURED"
	CodeConfigInvalid  = "CONFIG_INVALID"
	CodePanic          = "PANIC"
	CodeRouteNotFound  = "ROUTE_NOT_FOUND"
)
