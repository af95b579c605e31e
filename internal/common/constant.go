package common

import "time"

// AuthorizationHeader carries the bearer token on outbound API requests.
const AuthorizationHeader = "Authorization"

// SessionTTL is how long a persisted session snapshot remains usable.
// It mirrors the 7-day cookie expiry the web client of this API uses.
const SessionTTL = 7 * 24 * time.Hour

// SearchDebounce is the quiescence window applied to search keystrokes
// before the committed term is allowed to reach the query.
const SearchDebounce = 300 * time.Millisecond
