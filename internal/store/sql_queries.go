package store

import "strings"

// joinColumns renders a column list for a RETURNING clause.
func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}

const (
	userColumns = `id, email, name, password_hash, google_id, is_email_verified, avatar, otp, otp_expires_at, created_at`

	createUser = `INSERT INTO users (id, email, name, password_hash, google_id, is_email_verified, avatar, otp, otp_expires_at, created_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    RETURNING ` + userColumns + `;`

	findUserByEmail = `SELECT ` + userColumns + `
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT ` + userColumns + `
    FROM users
    WHERE id = $1;`

	// federated matches win over plain email matches when both exist
	findUserByEmailOrGoogleID = `SELECT ` + userColumns + `
    FROM users
    WHERE google_id = $1 OR email = $2
    ORDER BY CASE WHEN google_id = $3 THEN 0 ELSE 1 END
    LIMIT 1;`

	// consumeSignupOTP flips an unverified account to verified in a single
	// conditional UPDATE: the row must match by email and code, still be
	// unverified, and the code must not have expired. Zero rows updated is
	// indistinguishable across all three failure causes.
	consumeSignupOTP = `UPDATE users
    SET password_hash = $1, is_email_verified = TRUE, otp = NULL, otp_expires_at = NULL
    WHERE email = $2 AND otp = $3 AND is_email_verified = FALSE AND otp_expires_at > $4
    RETURNING ` + userColumns + `;`

	// linkGoogleAccount attaches a federated identity and marks the account
	// verified; the stored avatar is kept when one is already set.
	linkGoogleAccount = `UPDATE users
    SET google_id = $1, is_email_verified = TRUE,
        avatar = CASE WHEN avatar IS NULL OR avatar = '' THEN $2 ELSE avatar END
    WHERE id = $3
    RETURNING ` + userColumns + `;`

	deleteUser = `DELETE FROM users
    WHERE id = $1;`
)
