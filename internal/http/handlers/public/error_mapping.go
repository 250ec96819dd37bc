package public

import (
	"github.com/ebookstore-next/internal/http/response"
	"github.com/ebookstore-next/internal/service"
)

var ownershipErrorRules = []errorRule{
	{Target: service.ErrForbidden, Code: response.CodeForbidden, Key: "error.forbidden"},
}

var bookLookupErrorRules = []errorRule{
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.book_not_found"},
}

var categoryLookupErrorRules = []errorRule{
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.category_not_found"},
	{Target: service.ErrCategoryNotFound, Code: response.CodeNotFound, Key: "error.category_not_found"},
}

var registerErrorRules = []errorRule{
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Key: "error.email_invalid"},
	{Target: service.ErrEmailExists, Code: response.CodeConflict, Key: "error.email_exists"},
	{Target: service.ErrWeakPassword, Code: response.CodeBadRequest, Key: "error.password_weak"},
}

var loginErrorRules = []errorRule{
	{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Key: "error.invalid_credentials"},
}

var favoriteAddErrorRules = joinRules(ownershipErrorRules, []errorRule{
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.book_not_found"},
	{Target: service.ErrBookInactive, Code: response.CodeBadRequest, Key: "error.book_inactive"},
	{Target: service.ErrFavoriteExists, Code: response.CodeConflict, Key: "error.favorite_exists"},
})

var favoriteRemoveErrorRules = joinRules(ownershipErrorRules, []errorRule{
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.favorite_not_found"},
})

var orderCreateErrorRules = joinRules(ownershipErrorRules, []errorRule{
	{Target: service.ErrInvalidOrder, Code: response.CodeBadRequest, Key: "error.order_invalid"},
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.user_not_found"},
})

var orderLookupErrorRules = joinRules(ownershipErrorRules, []errorRule{
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
})
