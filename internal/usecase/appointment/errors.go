package appointment

import (
	"errors"

	domain "github.com/profislots/profislots-api/internal/domain/appointment"
	"github.com/profislots/profislots-api/internal/httperr"
)

// lookupErr separates a missing row from a failing store.
func lookupErr(err error, notFoundCode, op string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrNotFound(notFoundCode)
	}
	return httperr.Unavailable(op, err)
}
