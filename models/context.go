package models

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
)

// Context wraps a single request/response pair and the helpers to respond
// to it. Each request gets its own Context; nothing here is shared.
type Context struct {
	Request        *http.Request
	ResponseWriter http.ResponseWriter
	RouteVars      map[string]string
	StartTime      time.Time
	IP             net.IP
}

// ErrorResponse is the body for any non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MakeContext constructs the Context for the current request.
func MakeContext(
	request *http.Request,
	responseWriter http.ResponseWriter,
) *Context {

	c := new(Context)
	c.Request = request
	c.ResponseWriter = responseWriter
	c.RouteVars = mux.Vars(request)
	c.StartTime = time.Now()
	c.IP = GetRequestIP(request)

	return c
}

// GetRequestIP returns the IP the request originated from
func GetRequestIP(request *http.Request) net.IP {
	host, _, _ := net.SplitHostPort(request.RemoteAddr)
	return net.ParseIP(host)
}

// GetHTTPMethod returns the HTTP method, honouring the common POST override
// mechanisms so that limited clients can still express the full verb set.
func (c *Context) GetHTTPMethod() string {
	m := c.Request.Method

	if m == "POST" {
		if c.Request.Header.Get("X-HTTP-Method-Override") != "" {
			m = strings.ToUpper(c.Request.Header.Get("X-HTTP-Method-Override"))
		}
		if c.Request.URL.Query().Get("method") != "" {
			m = strings.ToUpper(c.Request.URL.Query().Get("method"))
		}

		switch m {
		case "DELETE", "GET", "HEAD", "OPTIONS", "PATCH", "POST", "PUT":
		default:
			// If it wasn't one of the above then let's just use what we know
			// is safe
			return c.Request.Method
		}
	}

	return m
}

// RespondWithData marshals data and responds with it as the whole body.
func (c *Context) RespondWithData(data interface{}) error {
	output, err := json.Marshal(data)
	if err != nil {
		http.Error(c.ResponseWriter, err.Error(), http.StatusInternalServerError)
		return err
	}

	return c.RespondWithJSON(output, http.StatusOK)
}

// RespondWithJSON writes the given pre-serialised JSON verbatim. The data
// endpoints use this so that a cache hit is byte-identical to what was
// stored for the key.
func (c *Context) RespondWithJSON(output []byte, statusCode int) error {

	// Prevent content type detection, a.k.a. sniffing
	c.ResponseWriter.Header().Set("Content-Type", "application/json")
	c.ResponseWriter.Header().Set("Access-Control-Allow-Origin", "*")

	// Prevent chunking
	c.ResponseWriter.Header().Set("Content-Length", strconv.Itoa(len(output)))

	return c.WriteResponse(output, statusCode)
}

// SetCacheStatus records on the response whether the body was served from
// cache. Purely diagnostic; no caller should depend on it.
func (c *Context) SetCacheStatus(hit bool) {
	status := "miss"
	if hit {
		status = "hit"
	}
	c.ResponseWriter.Header().Set("X-Cache", status)
}

// WriteResponse ultimately does the job of writing the response
func (c *Context) WriteResponse(output []byte, statusCode int) error {

	// Set status and write (finalise) all headers
	c.ResponseWriter.WriteHeader(statusCode)

	// HEAD requests return no body and are used to check headers for cache
	// invalidation functions
	if c.GetHTTPMethod() == "HEAD" {
		return nil
	}

	_, err := c.ResponseWriter.Write(output)

	// We only log at error severity when an error is not the result of the
	// client disconnecting. "broken pipe" is a syscall.EPIPE error that
	// indicates client disconnection.
	if err != nil {
		opErr, ok := err.(*net.OpError)
		if !ok || opErr.Err != syscall.EPIPE {
			glog.Errorf(
				"Error writing %s response to %s : %+v\n",
				c.GetHTTPMethod(),
				c.Request.URL.String(),
				err,
			)
		} else {
			glog.Warningf(
				"Error writing %s response to %s : %+v\n",
				c.GetHTTPMethod(),
				c.Request.URL.String(),
				err,
			)
		}
		return err
	}

	return nil
}

// RespondWithOptions returns an OPTIONS response for the allowed verbs
func (c *Context) RespondWithOptions(options []string) error {
	c.ResponseWriter.Header().Set("Allow", strings.Join(options, ","))
	c.ResponseWriter.Header().Set("Content-Length", "0")
	c.ResponseWriter.WriteHeader(http.StatusOK)
	return nil
}

// RespondWithStatus responds with the given status code and no body
func (c *Context) RespondWithStatus(statusCode int) error {
	return c.RespondWithJSON([]byte(`{}`), statusCode)
}

// RespondWithErrorMessage responds with a custom code and an error message
func (c *Context) RespondWithErrorMessage(
	message string,
	statusCode int,
) error {
	output, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		http.Error(c.ResponseWriter, err.Error(), http.StatusInternalServerError)
		return err
	}

	return c.RespondWithJSON(output, statusCode)
}
