package model

// RootName identifies one of the well-known user directories searched by a scan
type RootName string

const (
	RootDownloads RootName = "downloads"
	RootDocuments RootName = "documents"
	RootVideos    RootName = "videos"
	RootPictures  RootName = "pictures"
	RootLocalData RootName = "local-data"
	RootData      RootName = "data"
	RootDesktop   RootName = "desktop"
)

// CanonicalRoots is the fixed scan order. Results are always reported in this order.
var CanonicalRoots = []RootName{
	RootDownloads,
	RootDocuments,
	RootVideos,
	RootPictures,
	RootLocalData,
	RootData,
	RootDesktop,
}

var rootLabels = map[RootName]string{
	RootDownloads: "Downloads dir",
	RootDocuments: "Documents dir",
	RootVideos:    "Videos dir",
	RootPictures:  "Pictures dir",
	RootLocalData: "Local data dir",
	RootData:      "Data dir",
	RootDesktop:   "Desktop dir",
}

// Label returns the display name of the root
func (n RootName) Label() string {
	if label, ok := rootLabels[n]; ok {
		return label
	}
	return string(n)
}

// Root is a named scan location. An empty Path means the host has no such
// directory; it is scanned as an empty tree.
type Root struct {
	Name RootName
	Path string
}

// Resolved reports whether the host provided a path for this root
func (r Root) Resolved() bool {
	return r.Path != ""
}

// ResolveRoots returns every canonical root with its path on this host
func ResolveRoots() []Root {
	roots := make([]Root, len(CanonicalRoots))
	for i, name := range CanonicalRoots {
		roots[i] = Root{Name: name, Path: platformRootPath(name)}
	}
	return roots
}

// FindRoot returns the root with the given name
func FindRoot(roots []Root, name RootName) (Root, bool) {
	for _, r := range roots {
		if r.Name == name {
			return r, true
		}
	}
	return Root{}, false
}
