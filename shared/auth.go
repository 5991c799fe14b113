package shared

type ApiErrorType string

const (
	ApiErrorTypeInvalidToken   ApiErrorType = "invalid_token"
	ApiErrorTypeInvalidRequest ApiErrorType = "invalid_request"
	ApiErrorTypeNotFound       ApiErrorType = "not_found"
	ApiErrorTypeForbidden      ApiErrorType = "forbidden"
	ApiErrorTypeConflict       ApiErrorType = "conflict"
	ApiErrorTypeRoomFull       ApiErrorType = "room_full"
	ApiErrorTypeRoomEnded      ApiErrorType = "room_ended"

	ApiErrorTypeOther ApiErrorType = "other"
)

type ApiError struct {
	Type   ApiErrorType `json:"type"`
	Status int          `json:"status"`
	Msg    string       `json:"msg"`
}
