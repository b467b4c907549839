package errors

/*
* Error codes are intended to convey detailed errors internally and to
* clients. These should be combined with the appropriate HTTP status code,
* but are not intended to supercede correct HTTP responses. Therefore there
* is no error code for "not found" because HTTP 404 is sufficient.
 */

const (

	// HTTP 400 Bad Request.
	// A parameter was not of the expected type.
	UnexpectedType ErrCode = 1
	// An invalidation target outside the known enumeration.
	UnknownTarget ErrCode = 2

	// HTTP 502 Bad Gateway.
	// An upstream API could not be reached or returned a non-2xx status.
	UpstreamUnavailable ErrCode = 3
	// An upstream API responded with a body we could not decode.
	MalformedResponse ErrCode = 4
)

// ErrCode conveys which class of failure occurred.
type ErrCode uint8

// FolioError implements the Error interface.
type FolioError struct {
	Function     string  `json:"-"`
	ErrorCode    ErrCode `json:"errorCode"`
	ErrorMessage string  `json:"errorDetail"`
}

func (e FolioError) Error() string {
	return e.ErrorMessage
}

func New(function string, errCode ErrCode, errMessage string) error {
	return &FolioError{
		Function:     function,
		ErrorCode:    errCode,
		ErrorMessage: errMessage,
	}
}
