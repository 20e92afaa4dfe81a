package catalog

import "errors"

// ErrNoVideos indicates the channel's uploads playlist is empty. It is not a
// failure: nothing is exported and the run ends successfully.
var ErrNoVideos = errors.New("no videos found on this channel")
