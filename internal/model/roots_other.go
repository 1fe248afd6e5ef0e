//go:build !windows

package model

import "github.com/adrg/xdg"

// platformRootPath maps roots onto XDG user directories. Both data roots
// resolve to the XDG data home, as there is no local/roaming split here.
func platformRootPath(name RootName) string {
	switch name {
	case RootDownloads:
		return xdg.UserDirs.Download
	case RootDocuments:
		return xdg.UserDirs.Documents
	case RootVideos:
		return xdg.UserDirs.Videos
	case RootPictures:
		return xdg.UserDirs.Pictures
	case RootLocalData, RootData:
		return xdg.DataHome
	case RootDesktop:
		return xdg.UserDirs.Desktop
	default:
		return ""
	}
}
