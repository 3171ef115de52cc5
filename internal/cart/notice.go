package cart

// Notice is the shopper-facing confirmation of a successful mutation.
type Notice string

const (
	NoticeNone            Notice = ""
	NoticeAdded           Notice = "Added to cart"
	NoticeQuantityUpdated Notice = "Quantity updated"
	NoticeRemoved         Notice = "Removed from cart"
	NoticeCleared         Notice = "Cart cleared"
)
