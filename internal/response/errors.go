package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation        ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload    ErrCode = "INVALID_PAYLOAD"
	ErrInvalidSessionKey ErrCode = "INVALID_SESSION_KEY"
	ErrTopicRequired     ErrCode = "TOPIC_REQUIRED"
	ErrScoreOutOfRange   ErrCode = "SCORE_OUT_OF_RANGE"
	ErrInvalidStatus     ErrCode = "INVALID_STATUS"
	ErrInvalidMonth      ErrCode = "INVALID_MONTH"
	ErrInvalidRecapMode  ErrCode = "INVALID_RECAP_MODE"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound       ErrCode = "NOT_FOUND"
	ErrStoreCorrupted ErrCode = "STORE_CORRUPTED"

	// ─── Backup ────────────────────────────────────────────────────────
	ErrBackupUnavailable ErrCode = "BACKUP_QUEUE_UNAVAILABLE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validasi gagal. Silakan periksa masukan Anda."
	case ErrInvalidPayload:
		return "Payload permintaan tidak valid."
	case ErrInvalidSessionKey:
		return "Kunci sesi tidak valid. Pilih tanggal atau materi dengan pertemuan."
	case ErrTopicRequired:
		return "Materi harus dipilih terlebih dahulu."
	case ErrScoreOutOfRange:
		return "Nilai harus antara 0 sampai 100."
	case ErrInvalidStatus:
		return "Status kehadiran tidak dikenali."
	case ErrInvalidMonth:
		return "Bulan harus antara 1 sampai 12."
	case ErrInvalidRecapMode:
		return "Mode rekap harus per tanggal atau per materi."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Sumber daya tidak ditemukan."
	case ErrStoreCorrupted:
		return "Data tersimpan rusak dan tidak dapat dibaca."

	// ─── Backup ────────────────────────────────────────────────────────
	case ErrBackupUnavailable:
		return "Antrean cadangan tidak tersedia."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Terlalu banyak permintaan. Silakan coba lagi nanti."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Terjadi kesalahan server internal."
	default:
		return "Terjadi kesalahan yang tidak terduga."
	}
}
