package apperror

// Message catalog. Response bodies only ever carry these strings.
const (
	MsgSignUpSuccess      = "sign-up completed, check your email for the verification code"
	MsgPasswordMismatch   = "password and password confirmation do not match"
	MsgPasswordTooLong    = "password must be at most 72 bytes"
	MsgEmailTaken         = "email is already registered"
	MsgNicknameTaken      = "nickname is already in use"
	MsgRestoreRequired    = "this account was deleted, restore it instead of signing up again"
	MsgNotificationFailed = "failed to send the verification email"

	MsgVerifySuccess     = "email verified"
	MsgNoPendingVerify   = "no pending verification for this email"
	MsgWrongCode         = "verification code does not match"
	MsgLogInSuccess      = "logged in"
	MsgLogOutSuccess     = "logged out"
	MsgAccountNotFound   = "account not found"
	MsgWrongCredentials  = "wrong password"
	MsgEmailNotVerified  = "email is not verified yet"
	MsgUnauthorized      = "authentication required"
	MsgForbidden         = "insufficient permissions"
	MsgInvalidPayload    = "invalid payload"
	MsgProfileSuccess    = "profile"
	MsgSearchSuccess     = "accounts"
	MsgRateLimitExceeded = "rate limit exceeded"
	MsgInternal          = "internal server error"
)

var (
	ErrPasswordMismatch   = New(KindValidation, MsgPasswordMismatch)
	ErrPasswordTooLong    = New(KindValidation, MsgPasswordTooLong)
	ErrEmailTaken         = New(KindConflict, MsgEmailTaken)
	ErrNicknameTaken      = New(KindConflict, MsgNicknameTaken)
	ErrRestoreRequired    = New(KindConflict, MsgRestoreRequired)
	ErrNotificationFailed = New(KindInternal, MsgNotificationFailed)
	ErrNoPendingVerify    = New(KindValidation, MsgNoPendingVerify)
	ErrWrongCode          = New(KindValidation, MsgWrongCode)
	ErrAccountNotFound    = New(KindNotFound, MsgAccountNotFound)
	ErrWrongCredentials   = New(KindAuth, MsgWrongCredentials)
	ErrEmailNotVerified   = New(KindAuth, MsgEmailNotVerified)
	ErrUnauthorized       = New(KindAuth, MsgUnauthorized)
	ErrInternal           = New(KindInternal, MsgInternal)
)
