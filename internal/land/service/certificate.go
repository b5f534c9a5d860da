package service

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/Andrics/Beyond-Earth/pkg/model"
)

const certificateAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateCertificate mints an ownership certificate. The number embeds the
// issue timestamp in epoch milliseconds plus a random suffix, so collisions
// require two purchases in the same millisecond drawing the same suffix; the
// unique index on the collection catches that residual case.
func GenerateCertificate(prefix string, suffixLen int, landType string, size float64, now time.Time, rnd *rand.Rand) model.OwnershipCertificate {
	suffix := make([]byte, suffixLen)
	for i := range suffix {
		suffix[i] = certificateAlphabet[rnd.Intn(len(certificateAlphabet))]
	}

	number := fmt.Sprintf("%s-%d-%s", prefix, now.UnixMilli(), string(suffix))

	return model.OwnershipCertificate{
		CertificateNumber: strings.ToUpper(number),
		IssueDate:         now,
		RegistrationDetails: fmt.Sprintf("Registered %s plot of %.2f sq km on Mars", landType, size),
	}
}
