package models

// RevokedSession is a logout record. A token whose jti appears here is
// rejected until it would have expired anyway.
type RevokedSession struct {
	TokenID   string `json:"token_id" dynamodbav:"token_id"`
	Username  string `json:"username" dynamodbav:"username"`
	RevokedAt int64  `json:"revoked_at" dynamodbav:"revoked_at"`
	ExpiresAt int64  `json:"expires_at" dynamodbav:"expires_at"`
}
