package response

type StatusCode int

const (
	StatusOK                  StatusCode = 200
	StatusCreated             StatusCode = 201
	StatusAccepted            StatusCode = 202
	StatusMovedPermanently    StatusCode = 301
	StatusNotModified         StatusCode = 304
	StatusBadRequest          StatusCode = 400
	StatusUnauthorized        StatusCode = 401
	StatusForbidden           StatusCode = 403
	StatusNotFound            StatusCode = 404
	StatusMethodNotSupported  StatusCode = 405
	StatusInternalServerError StatusCode = 500
)

var reasons = map[StatusCode]string{
	StatusOK:                  "OK",
	StatusCreated:             "Created",
	StatusAccepted:            "Accepted",
	StatusMovedPermanently:    "Moved Permanently",
	StatusNotModified:         "Not Modified",
	StatusBadRequest:          "Bad Request",
	StatusUnauthorized:        "Unauthorized",
	StatusForbidden:           "Forbidden",
	StatusNotFound:            "Not Found",
	StatusMethodNotSupported:  "Method Not Supported",
	StatusInternalServerError: "Internal Server Error",
}

// Reason reports the reason phrase, and false for codes outside the set.
func (c StatusCode) Reason() (string, bool) {
	r, ok := reasons[c]
	return r, ok
}

func (c StatusCode) Valid() bool {
	_, ok := reasons[c]
	return ok
}
