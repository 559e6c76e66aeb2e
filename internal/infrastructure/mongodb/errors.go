package mongodb

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/partsunlimited-catalog/internal/domain"
)

// Códigos de error del servidor relevantes para el aprovisionamiento.
const (
	codeBadValue            = 2
	codeFailedToParse       = 9
	codeUnauthorized        = 13
	codeAuthFailed          = 18
	codeNamespaceNotFound   = 26
	codeNamespaceExists     = 48
	codeInvalidNamespace    = 73
	codeIndexOptionConflict = 85
	codeRequestRateTooLarge = 16500 // Cosmos DB (API para MongoDB)
)

// translate envuelve un error del driver en *domain.StoreError con un status estilo HTTP.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	return &domain.StoreError{
		StatusCode: statusOf(err),
		Op:         op,
		Message:    messageOf(err),
		Err:        err,
	}
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled), mongo.IsTimeout(err):
		return http.StatusRequestTimeout
	case mongo.IsDuplicateKeyError(err):
		return http.StatusConflict
	case mongo.IsNetworkError(err):
		return http.StatusServiceUnavailable
	}

	var se mongo.ServerError
	if !errors.As(err, &se) {
		return http.StatusInternalServerError
	}
	switch {
	case se.HasErrorCode(codeNamespaceExists):
		return http.StatusConflict
	case se.HasErrorCode(codeAuthFailed):
		return http.StatusUnauthorized
	case se.HasErrorCode(codeUnauthorized):
		return http.StatusForbidden
	case se.HasErrorCode(codeRequestRateTooLarge):
		return http.StatusTooManyRequests
	case se.HasErrorCode(codeNamespaceNotFound):
		return http.StatusNotFound
	case se.HasErrorCode(codeBadValue), se.HasErrorCode(codeFailedToParse), se.HasErrorCode(codeInvalidNamespace):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func messageOf(err error) string {
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		if len(we.WriteErrors) > 0 {
			return we.WriteErrors[0].Message
		}
		if we.WriteConcernError != nil {
			return we.WriteConcernError.Message
		}
	}
	return err.Error()
}

// isNamespaceExists la colección (o la base) ya existe: carrera con otro proceso o corrida previa.
func isNamespaceExists(err error) bool {
	var se mongo.ServerError
	if errors.As(err, &se) && se.HasErrorCode(codeNamespaceExists) {
		return true
	}
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "already exists")
}

// isIndexOptionsConflict mismo índice con otro nombre u opciones.
func isIndexOptionsConflict(err error) bool {
	var se mongo.ServerError
	if errors.As(err, &se) && se.HasErrorCode(codeIndexOptionConflict) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "IndexOptionsConflict")
}
