package errors

import (
	stderrs "errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE classes the repos care about
var codeBySQLState = map[string]ErrorCode{
	"23505": ErrorCodeDuplicateKey,    // unique_violation
	"23503": ErrorCodeInvalidArgument, // foreign_key_violation
	"22001": ErrorCodeInvalidArgument, // string_data_right_truncation
	"22P02": ErrorCodeInvalidArgument, // invalid_text_representation
	"23502": ErrorCodeValidation,      // not_null_violation
	"23514": ErrorCodeValidation,      // check_violation
	"25006": ErrorCodeUnavailable,     // read_only_sql_transaction
	"57P03": ErrorCodeUnavailable,     // cannot_connect_now
	"53300": ErrorCodeUnavailable,     // too_many_connections
}

// PgError returns the server error in err's chain
func PgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	ok := stderrs.As(err, &pgErr)
	return pgErr, ok
}

// FromPostgres classifies a storage error under msg
// server errors map by SQLSTATE, failed connections become Unavailable, the rest DB
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	code := ErrorCodeDB
	if pgErr, ok := PgError(err); ok {
		if c, known := codeBySQLState[pgErr.Code]; known {
			code = c
		}
		if field := pgErr.ColumnName; field != "" {
			return WithField(Wrapf(err, code, "%s", msg), field)
		}
	} else if pgconn.Timeout(err) || isConnectError(err) {
		code = ErrorCodeUnavailable
	}
	return Wrapf(err, code, "%s", msg)
}

func isConnectError(err error) bool {
	var ce *pgconn.ConnectError
	return stderrs.As(err, &ce)
}
