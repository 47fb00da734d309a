package request

type Method string

const (
	MethodGet    Method = "GET"
	MethodHead   Method = "HEAD"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodPatch  Method = "PATCH"
	MethodDelete Method = "DELETE"
)

var methods = map[string]Method{
	"GET":    MethodGet,
	"HEAD":   MethodHead,
	"POST":   MethodPost,
	"PUT":    MethodPut,
	"PATCH":  MethodPatch,
	"DELETE": MethodDelete,
}

// ParseMethod matches the token exactly; "get" is not GET.
func ParseMethod(token string) (Method, bool) {
	m, ok := methods[token]
	return m, ok
}

func (m Method) String() string {
	return string(m)
}
