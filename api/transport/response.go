package transport

// Message is the body of every non-resource response: login/logout results and
// all error payloads. The API intentionally has no envelope around resource
// responses; tasks are serialized as plain objects and arrays.
type Message struct {
	Message string `json:"message"`
}

// Fixed response messages, kept byte-identical to the public contract.
const (
	MsgTaskNotFound       = "해당 id를 찾을 수 없습니다."
	MsgLoginSuccess       = "로그인 성공"
	MsgLogoutSuccess      = "로그아웃 성공"
	MsgCredentialsNeeded  = "이메일과 비밀번호가 필요합니다."
	MsgCredentialMismatch = "이메일 또는 비밀번호가 일치하지 않습니다."
	MsgNoToken            = "토큰이 없습니다."
	MsgInvalidToken       = "토큰이 유효하지 않습니다."
	MsgInvalidPayload     = "잘못된 요청 형식입니다."
	MsgInternalError      = "서버 오류가 발생했습니다."
	MsgTooManyRequests    = "요청이 너무 많습니다."
)

// NewMessage wraps a fixed message string.
func NewMessage(msg string) Message {
	return Message{Message: msg}
}
