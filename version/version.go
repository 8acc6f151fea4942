// Copyright The Sdat2img Authors
// SPDX-License-Identifier: Apache-2.0

package version

// Version is the semantic version of this build, overridden via
// -ldflags at release time.
var Version = "1.3.0+git"
