package server

import (
	"github.com/folio-cc/folio/models"
)

// Field name   | Mandatory? | Allowed values  | Allowed special characters
// ----------   | ---------- | --------------  | --------------------------
// Seconds      | Yes        | 0-59            | * / , -
// Minutes      | Yes        | 0-59            | * / , -
// Hours        | Yes        | 0-23            | * / , -
// Day of month | Yes        | 1-31            | * / , - ?
// Month        | Yes        | 1-12 or JAN-DEC | * / , -
// Day of week  | Yes        | 0-6 or SUN-SAT  | * / , - ?

// The warm jobs keep the hot entries populated so interactive requests
// seldom hit a cold key. Each schedule is offset from the others to avoid
// hammering every upstream at once.
var (
	jobs = map[string]func(){
		//SS MI HH  DOM MON DOW
		"  0  0     *    *   *   *": models.WarmGitHubCaches,  // Every hour
		"  0 10     *    *   *   *": models.WarmStravaCache,   // Every hour at ten past
		"  0 20     *    *   *   *": models.WarmWakaTimeCache, // Every hour at twenty past
		"  0 30  */6    *   *   *":  models.WarmCratesCache,   // Every six hours at half past
		"  0 40  */6    *   *   *":  models.WarmLeetCodeCache, // Every six hours at twenty to
	}
)
