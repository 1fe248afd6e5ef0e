//go:build windows

package model

import "golang.org/x/sys/windows"

var knownFolders = map[RootName]*windows.KNOWNFOLDERID{
	RootDownloads: windows.FOLDERID_Downloads,
	RootDocuments: windows.FOLDERID_Documents,
	RootVideos:    windows.FOLDERID_Videos,
	RootPictures:  windows.FOLDERID_Pictures,
	RootLocalData: windows.FOLDERID_LocalAppData,
	RootData:      windows.FOLDERID_RoamingAppData,
	RootDesktop:   windows.FOLDERID_Desktop,
}

func platformRootPath(name RootName) string {
	id, ok := knownFolders[name]
	if !ok {
		return ""
	}
	path, err := windows.KnownFolderPath(id, windows.KF_FLAG_DEFAULT)
	if err != nil {
		return ""
	}
	return path
}
