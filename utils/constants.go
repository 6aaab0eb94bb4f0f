// File: utils/constants.go
package utils

import "time"

// AvailabilityCacheKey is the Redis key holding the latest availability snapshot.
const AvailabilityCacheKey = "availability:snapshot"

// AvailabilityCacheTTL bounds how long a snapshot is served before a fresh
// calendar read.
const AvailabilityCacheTTL = 60 * time.Second

// MenuCacheKey is the Redis key holding the menu catalog.
const MenuCacheKey = "menu:stations"

// MenuCacheTTL is the time-to-live for the cached menu catalog.
const MenuCacheTTL = 5 * time.Minute

// FormSessionPrefix is the prefix used for booking form session keys.
const FormSessionPrefix = "bookingform:"

// FormSessionTTL is the time-to-live for idle booking form sessions.
const FormSessionTTL = 30 * time.Minute
