package service

// QRCodeService renders tracking slips as QR code images.
type QRCodeService interface {
	// GenerateTrackingQR encodes a tracking number as a PNG QR code.
	GenerateTrackingQR(trackingNumber string) ([]byte, error)
}
