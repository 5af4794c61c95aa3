package handler

import (
	"net/http"

	"notes-service/pkg/middleware"
)

func getUserFromContext(r *http.Request) (id, email string, ok bool) {
	return middleware.UserFromContext(r.Context())
}
