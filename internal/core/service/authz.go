package service

import (
	"fmt"
	"strings"

	"github.com/Yasmeen645/Bug-Tracking-System/internal/core/domain"
)

// authorize fails with ErrInsufficientRole unless actor holds one of allowed.
func authorize(actor *domain.Account, allowed ...domain.Role) error {
	if actor != nil && actor.Is(allowed...) {
		return nil
	}
	names := make([]string, len(allowed))
	for i, r := range allowed {
		names[i] = string(r)
	}
	return fmt.Errorf("%w: requires %s", domain.ErrInsufficientRole, strings.Join(names, " or "))
}
