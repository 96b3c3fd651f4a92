package app

import "github.com/small-frappuccino/modcore/pkg/util"

// Version is the current version of the modcore module.
const Version = "0.4.0"

// AppVersion is the version of the running application.
func AppVersion() string {
	return util.AppVersion
}

// SetAppVersion sets the version of the running application.
func SetAppVersion(v string) {
	util.SetAppVersion(v)
}
