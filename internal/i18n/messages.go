package i18n

var enUS = map[string]string{
	"error.bad_request":             "Invalid request parameters",
	"error.unauthorized":            "Please sign in first",
	"error.token_invalid":           "Session expired, please sign in again",
	"error.forbidden":               "You do not have permission to perform this action",
	"error.not_found":               "Resource not found",
	"error.too_many_requests":       "Too many requests, please retry in %d seconds",
	"error.login_rate_limited":      "Too many login attempts, please retry in %d seconds",
	"error.internal":                "Internal server error",
	"error.user_id_invalid":         "Invalid user id",
	"error.user_id_type_invalid":    "Invalid user id type",
	"error.book_not_found":          "Book not found",
	"error.book_inactive":           "This book is no longer available",
	"error.book_invalid":            "Title, author, price and stock are required",
	"error.category_not_found":      "Category not found",
	"error.category_exists":         "A category with this name already exists",
	"error.category_in_use":         "This category still has books and cannot be deleted",
	"error.category_invalid":        "Category name is required",
	"error.favorite_exists":         "This book is already in your favorites",
	"error.favorite_not_found":      "Favorite not found",
	"error.order_not_found":         "Order not found",
	"error.order_invalid":           "Order lines or totals are inconsistent",
	"error.order_status_invalid":    "Invalid order status",
	"error.email_invalid":           "Invalid email address",
	"error.email_exists":            "This email is already registered",
	"error.invalid_credentials":     "Invalid email or password",
	"error.password_weak":           "Password does not meet the policy",
	"error.password_min_length":     "Password must be at least %d characters",
	"error.password_require_letter": "Password must contain a letter",
	"error.password_require_number": "Password must contain a number",
	"error.user_not_found":          "User not found",
	"error.dashboard_failed":        "Failed to load dashboard",
	"error.rate_limit_unavailable":  "Rate limiter unavailable, please try again later",
	"error.auth_header_invalid":     "Authorization header must be a Bearer token",
	"error.book_id_invalid":         "Invalid book id",
	"error.category_id_invalid":     "Invalid category id",
	"error.order_id_invalid":        "Invalid order id",
	"error.favorite_id_invalid":     "Invalid favorite id",
	"error.role_invalid":            "Invalid role",
	"error.authz_failed":            "Failed to update permissions",

	"validation.required": "%s is required",
	"validation.min":      "%s must be at least %s characters",
	"validation.max":      "%s must be at most %s characters",
	"validation.email":    "%s must be a valid email address",
	"validation.invalid":  "%s is invalid",

	"store.cart_added":          "%s was added to your cart",
	"store.cart_updated":        "Your cart was updated",
	"store.cart_removed":        "The item was removed from your cart",
	"store.cart_cleared":        "Your cart was emptied",
	"store.cart_empty":          "Your cart is empty",
	"store.book_not_found":      "The book could not be found",
	"store.quantity_invalid":    "Quantity must be between 1 and 99",
	"store.checkout_failed":     "Your order could not be saved, please try again",
	"store.checkout_success":    "Your order #%d was received",
	"store.checkout_cleanup":    "Your order #%d was received but the cart could not be emptied",
	"store.favorite_added":      "%s was added to your favorites",
	"store.favorite_exists":     "This book is already in your favorites",
	"store.login_required":      "Please sign in to continue",
	"store.login_failed":        "Invalid email or password",
	"store.login_success":       "Welcome back",
	"store.logout_success":      "You have been signed out",
	"store.service_unavailable": "The store is temporarily unavailable, please try again",
	"store.validation_failed":   "Please correct the highlighted fields",
	"store.access_denied":       "You do not have permission to view this page",
	"store.favorite_failed":     "The book could not be added to your favorites",
	"store.load_failed":         "The page could not be loaded, please try again",
	"store.title_home":          "E-Book Store",
	"store.title_books":         "Books",
	"store.title_categories":    "Categories",
	"store.title_cart":          "Shopping Cart",
	"store.title_checkout":      "Checkout",
	"store.title_confirmed":     "Order Confirmed",
	"store.title_login":         "Sign In",
	"store.title_admin":         "Admin Dashboard",
	"store.title_access_denied": "Access Denied",
	"store.title_not_found":     "Page Not Found",
}

var trTR = map[string]string{
	"error.bad_request":             "Geçersiz istek parametreleri",
	"error.unauthorized":            "Lütfen önce giriş yapın",
	"error.token_invalid":           "Oturumunuzun süresi doldu, lütfen tekrar giriş yapın",
	"error.forbidden":               "Bu işlem için yetkiniz yok",
	"error.not_found":               "Kayıt bulunamadı",
	"error.too_many_requests":       "Çok fazla istek, lütfen %d saniye sonra tekrar deneyin",
	"error.login_rate_limited":      "Çok fazla giriş denemesi, lütfen %d saniye sonra tekrar deneyin",
	"error.internal":                "Sunucu hatası",
	"error.user_id_invalid":         "Geçersiz kullanıcı",
	"error.user_id_type_invalid":    "Geçersiz kullanıcı türü",
	"error.book_not_found":          "Kitap bulunamadı",
	"error.book_inactive":           "Bu kitap artık satışta değil",
	"error.book_invalid":            "Kitap adı, yazar, fiyat ve stok zorunludur",
	"error.category_not_found":      "Kategori bulunamadı",
	"error.category_exists":         "Bu isimde bir kategori zaten var",
	"error.category_in_use":         "Bu kategoride kitaplar var, silinemez",
	"error.category_invalid":        "Kategori adı zorunludur",
	"error.favorite_exists":         "Bu kitap zaten favorilerinizde",
	"error.favorite_not_found":      "Favori bulunamadı",
	"error.order_not_found":         "Sipariş bulunamadı",
	"error.order_invalid":           "Sipariş kalemleri veya toplamlar tutarsız",
	"error.order_status_invalid":    "Geçersiz sipariş durumu",
	"error.email_invalid":           "Geçersiz e-posta adresi",
	"error.email_exists":            "Bu e-posta zaten kayıtlı",
	"error.invalid_credentials":     "E-posta veya şifre hatalı",
	"error.password_weak":           "Şifre kurallara uymuyor",
	"error.password_min_length":     "Şifre en az %d karakter olmalıdır",
	"error.password_require_letter": "Şifre en az bir harf içermelidir",
	"error.password_require_number": "Şifre en az bir rakam içermelidir",
	"error.user_not_found":          "Kullanıcı bulunamadı",
	"error.dashboard_failed":        "Dashboard verileri yüklenirken bir hata oluştu",
	"error.rate_limit_unavailable":  "Hız sınırlayıcı kullanılamıyor, lütfen daha sonra tekrar deneyin",
	"error.auth_header_invalid":     "Authorization başlığı Bearer token olmalıdır",
	"error.book_id_invalid":         "Geçersiz kitap numarası",
	"error.category_id_invalid":     "Geçersiz kategori numarası",
	"error.order_id_invalid":        "Geçersiz sipariş numarası",
	"error.favorite_id_invalid":     "Geçersiz favori numarası",
	"error.role_invalid":            "Geçersiz rol",
	"error.authz_failed":            "Yetkiler güncellenemedi",

	"validation.required": "%s alanı zorunludur",
	"validation.min":      "%s en az %s karakter olmalıdır",
	"validation.max":      "%s en fazla %s karakter olabilir",
	"validation.email":    "%s geçerli bir e-posta olmalıdır",
	"validation.invalid":  "%s geçersiz",

	"store.cart_added":          "%s sepete eklendi",
	"store.cart_updated":        "Sepetiniz güncellendi",
	"store.cart_removed":        "Ürün sepetten çıkarıldı",
	"store.cart_cleared":        "Sepetiniz boşaltıldı",
	"store.cart_empty":          "Sepetiniz boş",
	"store.book_not_found":      "Kitap bulunamadı",
	"store.quantity_invalid":    "Adet 1 ile 99 arasında olmalıdır",
	"store.checkout_failed":     "Siparişiniz kaydedilemedi, lütfen tekrar deneyin",
	"store.checkout_success":    "#%d numaralı siparişiniz alındı",
	"store.checkout_cleanup":    "#%d numaralı siparişiniz alındı ancak sepet boşaltılamadı",
	"store.favorite_added":      "%s favorilere eklendi",
	"store.favorite_exists":     "Bu kitap zaten favorilerinizde",
	"store.login_required":      "Devam etmek için lütfen giriş yapın",
	"store.login_failed":        "E-posta veya şifre hatalı",
	"store.login_success":       "Tekrar hoş geldiniz",
	"store.logout_success":      "Çıkış yaptınız",
	"store.service_unavailable": "Mağaza geçici olarak kullanılamıyor, lütfen tekrar deneyin",
	"store.validation_failed":   "Lütfen işaretli alanları düzeltin",
	"store.access_denied":       "Bu sayfayı görüntüleme yetkiniz yok",
	"store.favorite_failed":     "Kitap favorilere eklenemedi",
	"store.load_failed":         "Sayfa yüklenemedi, lütfen tekrar deneyin",
	"store.title_home":          "E-Kitap Mağazası",
	"store.title_books":         "Kitaplar",
	"store.title_categories":    "Kategoriler",
	"store.title_cart":          "Alışveriş Sepeti",
	"store.title_checkout":      "Sipariş Tamamla",
	"store.title_confirmed":     "Sipariş Onaylandı",
	"store.title_login":         "Giriş Yap",
	"store.title_admin":         "Yönetim Paneli",
	"store.title_access_denied": "Erişim Engellendi",
	"store.title_not_found":     "Sayfa Bulunamadı",
}
