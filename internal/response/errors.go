package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrAccountDisabled    ErrCode = "ACCOUNT_DISABLED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Exam-specific ─────────────────────────────────────────────────
	ErrExamSetNotFound   ErrCode = "EXAM_SET_NOT_FOUND"
	ErrInvalidSelection  ErrCode = "INVALID_SELECTION"
	ErrResultSetNotFound ErrCode = "RESULT_SET_NOT_FOUND"
	ErrResultNotFound    ErrCode = "RESULT_NOT_FOUND"

	// ─── Media ─────────────────────────────────────────────────────────
	ErrPathForbidden ErrCode = "PATH_FORBIDDEN"
	ErrImageNotFound ErrCode = "IMAGE_NOT_FOUND"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "이메일 또는 비밀번호가 올바르지 않습니다."
	case ErrAccountDisabled:
		return "비활성화된 계정입니다."
	case ErrTokenRequired:
		return "인증 토큰이 필요합니다."
	case ErrTokenInvalid:
		return "인증 토큰이 유효하지 않습니다."
	case ErrTokenExpired:
		return "인증 토큰이 만료되었습니다."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "입력값 검증에 실패했습니다."
	case ErrInvalidID:
		return "ID 형식이 올바르지 않습니다."
	case ErrInvalidPayload:
		return "요청 본문이 올바르지 않습니다."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "요청한 데이터를 찾을 수 없습니다."
	case ErrConflict:
		return "이미 존재하는 데이터입니다."

	// ─── Exam-specific ─────────────────────────────────────────────────
	case ErrExamSetNotFound:
		return "검색 실패: 기출 문제 없음"
	case ErrInvalidSelection:
		return "과목을 잘못 선택하셨습니다."
	case ErrResultSetNotFound:
		return "해당 응시 기록이 없습니다."
	case ErrResultNotFound:
		return "저장된 풀이 기록이 없습니다."

	// ─── Media ─────────────────────────────────────────────────────────
	case ErrPathForbidden:
		return "접근이 허용되지 않은 경로입니다."
	case ErrImageNotFound:
		return "이미지를 찾을 수 없습니다."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "요청이 너무 많습니다. 잠시 후 다시 시도해 주세요."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "서버 내부 오류가 발생했습니다."
	default:
		return "알 수 없는 오류가 발생했습니다."
	}
}
