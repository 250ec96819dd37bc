package guard

import (
	"testing"

	"github.com/ebookstore-next/internal/constants"
	"github.com/ebookstore-next/internal/storefront"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireUser(t *testing.T) {
	denied, ok := RequireUser(nil, "/checkout").(Denied)
	require.True(t, ok)
	assert.Equal(t, "/account/login?returnUrl=%2Fcheckout", denied.RedirectTarget)

	user := &storefront.Principal{UserID: 3, Role: constants.RoleUser}
	authorized, ok := RequireUser(user, "/checkout").(Authorized)
	require.True(t, ok)
	assert.Equal(t, user, authorized.Principal)
}

func TestRequireAdmin(t *testing.T) {
	user := &storefront.Principal{UserID: 3, Role: constants.RoleUser}
	denied, ok := RequireAdmin(user, "/admin").(Denied)
	require.True(t, ok)
	assert.Equal(t, AccessDeniedPath, denied.RedirectTarget)

	denied, ok = RequireAdmin(&storefront.Principal{}, "/admin").(Denied)
	require.True(t, ok)
	assert.Equal(t, "/account/login?returnUrl=%2Fadmin", denied.RedirectTarget)

	admin := &storefront.Principal{UserID: 1, Role: constants.RoleAdmin}
	_, ok = RequireAdmin(admin, "/admin").(Authorized)
	assert.True(t, ok)
}

func TestSafeReturnURL(t *testing.T) {
	assert.Equal(t, "/books?page=2", SafeReturnURL("/books?page=2"))
	assert.Equal(t, "", SafeReturnURL("https://evil.example.com"))
	assert.Equal(t, "", SafeReturnURL("//evil.example.com"))
	assert.Equal(t, LoginPath, LoginRedirect("http://evil"))
}
