package staticerr

import "errors"

var (
	ErrorInvalidSignature     = errors.New("InvalidSignature")
	ErrorLedgerUnavailable    = errors.New("LedgerUnavailable")
	ErrorStoreUnavailable     = errors.New("StoreUnavailable")
	ErrorResourceIsLocked     = errors.New("ResourceIsLocked")
	ErrorRabbitConnectionFail = errors.New("RabbitUnavailable")
)
