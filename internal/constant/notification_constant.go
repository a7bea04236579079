package constant

// NotificationTopic is the in-process bus topic carrying session toasts.
const NotificationTopic = "session.notifications"

const NotificationEventType = "SESSION_NOTIFICATION"

const (
	TitleWelcome            = "Welcome!"
	TitleLoggedOut          = "Logged out successfully"
	TitleCollectionExists   = "Collection exists"
	TitleCollectionCreated  = "Collection created"
	TitleCollectionDeleted  = "Collection Deleted"
	TitleCollectionNotFound = "Collection Not Found"
	TitleAlreadySaved       = "Already saved"
	TitleResourceSaved      = "Resource saved"
	TitleChatCleared        = "Chat Cleared"
	TitleProfileUpdated     = "Profile Updated"
)

const (
	DescWelcomeFormat           = "Great to have you here, %s!"
	DescLoggedOut               = "See you next time!"
	DescCollectionExists        = "A collection with this name already exists."
	DescCollectionCreatedFormat = "Created collection \"%s\""
	DescCollectionDeletedFormat = "Successfully deleted \"%s\""
	DescCollectionNotFound      = "The specified collection does not exist."
	DescAlreadySaved            = "This resource is already in the collection."
	DescResourceSavedFormat     = "Saved to \"%s\""
	DescChatCleared             = "All messages have been removed."
	DescProfileUpdated          = "Your profile information has been saved."
)
