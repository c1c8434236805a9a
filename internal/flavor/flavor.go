// Package flavor holds Willie's banner and commentary.
package flavor

import (
	"math/rand/v2"

	"github.com/buemura/willie/pkg/types"
)

// Banner is printed at the top of interactive commands.
const Banner = `
  ╔═══════════════════════════════════════════════════════════════════════╗
  ║   ____                           _ _                                  ║
  ║  / ___|_ __ ___  _   _ _ __   __| | | _____  ___ _ __   ___ _ __     ║
  ║ | |  _| '__/ _ \| | | | '_ \ / _` + "`" + ` | |/ / _ \/ _ \ '_ \ / _ \ '__|    ║
  ║ | |_| | | | (_) | |_| | | | | (_| |   <  __/  __/ |_) |  __/ |       ║
  ║  \____|_|  \___/ \__,_|_| |_|\__,_|_|\_\___|\___| .__/ \___|_|       ║
  ║                                                 |_|                   ║
  ║                    WILLIE                                             ║
  ║                                                                       ║
  ║     "GREASE ME UP! We're going in to sort yer code!"                 ║
  ╚═══════════════════════════════════════════════════════════════════════╝
`

var (
	Victory = []string{
		"ACH! It's CLEAN! Finally, some code that doesn't make me weep!",
		"Well done, laddie! Even I couldn't find any grease!",
		"BONNIE! This code is cleaner than my groundskeeper shed!",
		"Ye've done it! Zero issues! I'm almost... PROUD of ye!",
	}

	Failure = []string{
		"GREASE EVERYWHERE! This code is a DISASTER!",
		"ACH! My EYES! The issues... so many issues!",
		"Did Ralph write this?! It looks like paste and crayons!",
		"This code smells like haggis left in the sun for a WEEK!",
	}

	Scrub = []string{
		"SCRUBBIN' and DUBBIN'! Willie's on the job!",
		"Time to clean up yer mess, ye numpty!",
		"Another round of fixes comin' up!",
	}
)

var insults = map[types.Severity][]string{
	types.SeverityCritical: {
		"YE ABSOLUTE NUMPTY! This is a security disaster!",
		"ACH! MY EYES! This code is an abomination!",
		"Are ye TRYING to get hacked?! Fix this NOW!",
		"I've seen bairns write better code than this!",
		"This is so bad it's making me bagpipes weep!",
	},
	types.SeverityHigh: {
		"Are ye DAFT?! This is dangerous code!",
		"Grease me up, because I'm gonna have to fix this mess!",
		"Did Ralph write this? It looks like paste and crayons!",
		"This code smells like haggis left in the sun!",
	},
	types.SeverityMedium: {
		"This is garbage, laddie. Pure garbage.",
		"I wouldn't trust this code to lock a shed!",
		"Och, what were ye thinking here?",
		"This needs a good scrubbing, it does!",
	},
	types.SeverityLow: {
		"Och, I've seen worse... but not by much.",
		"This is sloppy work. Willie doesn't do sloppy.",
		"Clean this up before I lose my temper!",
	},
	types.SeverityInfo: {
		"Just so ye know, laddie...",
		"Here's a wee suggestion for ye...",
		"Not terrible, but could be better.",
	},
}

// Pick returns a random entry of bank, or "" for an empty bank.
func Pick(bank []string) string {
	if len(bank) == 0 {
		return ""
	}
	return bank[rand.IntN(len(bank))]
}

// Insult returns a random remark for the severity.
func Insult(s types.Severity) string {
	return Pick(insults[s])
}
