package server

import (
	"github.com/nhdewitt/simple-http/internal/request"
	"github.com/nhdewitt/simple-http/internal/response"
)

// Handler maps one parsed request to the response written back on its
// connection. It runs on the connection's goroutine.
type Handler func(req *request.Request) *response.Response
