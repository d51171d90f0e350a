package handlers

import (
	"net/http"
	"strconv"

	"github.com/digitalstore/storefront/internal/errors"
)

func parseIDPathValue(r *http.Request) (int64, error) {

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, errors.BadRequestError("Invalid ID in path")
	}

	return id, nil
}
