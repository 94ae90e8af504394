package apps

// UnknownKey is the sentinel content key for an entry with no usable
// identifier.
const UnknownKey = "unknown"

// ContentKey derives the stable string used to namespace an app's on-disk
// asset folder: the Google package name when present, else "apple_" plus the
// normalized track id, else UnknownKey. The pipeline and the site renderer
// must derive the key identically, since it gates which folder assets are
// written to and read from. Two entries resolving to the same key share (and
// overwrite) one folder; that collision is accepted, not guarded against.
func ContentKey(googleID, appleID string) string {
	if googleID != "" {
		return googleID
	}
	if tid := NormalizeTrackID(appleID); tid != "" {
		return "apple_" + tid
	}
	return UnknownKey
}
