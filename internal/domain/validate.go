package domain

import "regexp"

var sessionKeyRe = regexp.MustCompile(`^[a-f0-9]{64}$`)

func IsValidSessionKey(key string) bool { return sessionKeyRe.MatchString(key) }
