package httpx

// CurrentPage constants identify pages in templates and navigation.
const (
	PageHome      = "home"
	PageLogin     = "login"
	PageRegister  = "register"
	PageDashboard = "dashboard"
	PageFiles     = "files"
	PageMyInfo    = "my-info"
	PageSupport   = "support"
	PageBilling   = "billing"
)

const (
	// SessionCookieName carries the signed session token for browsers.
	SessionCookieName = "portal_session"

	// LoginPath is where anonymous visitors to protected pages are sent.
	LoginPath = "/login"
	// RegisterPath hosts the self-service registration form.
	RegisterPath = "/register"
	// DashboardPath is the landing page after sign-in.
	DashboardPath = "/dashboard"

	// CallbackParam names the query parameter holding the post-login destination.
	CallbackParam = "callbackUrl"

	// multipartMemory is held in memory before multipart parts spill to disk.
	multipartMemory = 8 << 20
)

// Response messages shared by the file endpoints.
const (
	msgUnauthorized       = "Unauthorized"
	msgNoFolder           = "No folder found for this client"
	msgNoFolderForListing = "No folder ID provided and could not determine folder by email"
	msgNoFolderForUpload  = "Client email or folder ID is required"
	msgNoFile             = "No file uploaded"
	msgUploadFailed       = "Error uploading file"
	msgFileTooLarge       = "File exceeds the upload size limit"
	msgNotFound           = "Not found"
	msgInvalidLogin       = "Invalid email or password"
)
