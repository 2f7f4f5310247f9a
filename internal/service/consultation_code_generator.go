package service

import (
	crand "crypto/rand"
	"encoding/hex"
	"math/big"
	"regexp"
	"strings"

	"github.com/tripnest/internal/constants"
)

const (
	consultationCodeDigits  = "0123456789"
	consultationCodeLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// ConsultationCodePattern 咨询码格式
const ConsultationCodePattern = `^[A-Z]{2}-[0-9]{4}-[A-Z]{4}$`

var (
	consultationCodePattern       = regexp.MustCompile(ConsultationCodePattern)
	consultationCodePrefixPattern = regexp.MustCompile(`^[A-Z]{2}$`)
)

// GenerateConsultationCode 生成 PP-DDDD-LLLL 形式的候选咨询码（不保证唯一）
func GenerateConsultationCode(prefix string) string {
	var b strings.Builder
	b.Grow(12)
	b.WriteString(NormalizeConsultationCodePrefix(prefix))
	b.WriteByte('-')
	writeRandomChars(&b, consultationCodeDigits, 4)
	b.WriteByte('-')
	writeRandomChars(&b, consultationCodeLetters, 4)
	return b.String()
}

// MatchesConsultationCodeFormat 判断是否符合咨询码格式，仅校验结构
func MatchesConsultationCodeFormat(code string) bool {
	return consultationCodePattern.MatchString(code)
}

// NormalizeConsultationCodePrefix 归一化前缀，非两位字母时回退默认前缀
func NormalizeConsultationCodePrefix(prefix string) string {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if !consultationCodePrefixPattern.MatchString(prefix) {
		return constants.ConsultationCodeDefaultPrefix
	}
	return prefix
}

// NormalizeConsultationCode 去除首尾空白并转为大写
func NormalizeConsultationCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func writeRandomChars(b *strings.Builder, alphabet string, n int) {
	limit := big.NewInt(int64(len(alphabet)))
	for i := 0; i < n; i++ {
		b.WriteByte(alphabet[randomIndex(limit)])
	}
}

// randomIndex 返回 [0, limit) 内均匀分布的随机数
func randomIndex(limit *big.Int) int64 {
	v, err := crand.Int(crand.Reader, limit)
	if err != nil {
		panic("crypto/rand unavailable: " + err.Error())
	}
	return v.Int64()
}

func randomHex(n int) string {
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n)
	if _, err := crand.Read(buf); err != nil {
		panic("crypto/rand unavailable: " + err.Error())
	}
	return hex.EncodeToString(buf)
}
