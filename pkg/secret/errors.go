package secret

import "errors"

// ErrWiped is returned when using a buffer whose content was already erased.
var ErrWiped = errors.New("secret buffer already wiped")
