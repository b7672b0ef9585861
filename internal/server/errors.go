package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/splitledger/splitledger/internal/auth"
	"github.com/splitledger/splitledger/internal/calculator"
	"github.com/splitledger/splitledger/internal/money"
	"github.com/splitledger/splitledger/internal/service"
	"github.com/splitledger/splitledger/internal/storage"
)

// writeError maps a domain error to an HTTP status and writes the standard
// error body. Unknown errors become 500 without leaking the message.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, storage.ErrNotFound):
		status, message = http.StatusNotFound, err.Error()

	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		status, message = http.StatusUnauthorized, err.Error()

	case errors.Is(err, auth.ErrEmailExists):
		status, message = http.StatusConflict, err.Error()

	case errors.Is(err, service.ErrAlreadySettled):
		status, message = http.StatusConflict, err.Error()

	case errors.Is(err, service.ErrMemberNotInGroup),
		errors.Is(err, service.ErrNotParticipant),
		errors.Is(err, service.ErrNotParty):
		status, message = http.StatusForbidden, err.Error()

	case errors.Is(err, service.ErrSelfSettlement),
		errors.Is(err, service.ErrPayerNotParticipant),
		errors.Is(err, service.ErrCurrencyMismatch),
		errors.Is(err, service.ErrMissingReason),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, money.ErrNonPositiveAmount),
		errors.Is(err, money.ErrTooPrecise),
		errors.Is(err, money.ErrBadCurrency),
		errors.Is(err, calculator.ErrNoParticipants),
		errors.Is(err, calculator.ErrNonPositiveTotal),
		errors.Is(err, calculator.ErrUnknownSplitType),
		errors.Is(err, calculator.ErrLengthMismatch),
		errors.Is(err, calculator.ErrSumMismatch),
		errors.Is(err, calculator.ErrPercentageMismatch),
		errors.Is(err, calculator.ErrZeroShares):
		status, message = http.StatusBadRequest, err.Error()
	}

	c.JSON(status, gin.H{"error": message})
}

func writeBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
}
