package calc

import (
	"github.com/nhdewitt/simple-http/internal/request"
	"github.com/nhdewitt/simple-http/internal/response"
)

// Handler evaluates the request body. Every method and path is treated the
// same.
func Handler(req *request.Request) *response.Response {
	var resp *response.Response
	v, err := Evaluate(req.Body)
	if err != nil {
		resp = response.WithCode(response.StatusInternalServerError, "Error: "+err.Error())
	} else {
		resp = response.OK(FormatResult(v))
	}
	resp.SetHeaders(response.DefaultHeaders()...)
	return resp
}
