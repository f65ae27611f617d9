package common

// AccessTokenHeaderName is the HTTP header used to carry the access token on
// requests from the CLI client.
const AccessTokenHeaderName = "Authorization"
