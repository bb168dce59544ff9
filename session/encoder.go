package session

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

const sessionFormatVersionCurrent = 1

const maxAuthorities = 255

// Encode serializes a Session into the versioned binary blob stored in
// Redis. All identity fields are length-prefixed with a single byte; the
// user-agent uses a two-byte prefix because real-world values routinely
// exceed 255 characters.
func Encode(s *Session) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte(sessionFormatVersionCurrent)

	if err := writeString8(&buf, s.UserID, "userID"); err != nil {
		return nil, err
	}
	if err := writeString8(&buf, s.Username, "username"); err != nil {
		return nil, err
	}
	if err := writeString8(&buf, s.DeptID, "deptID"); err != nil {
		return nil, err
	}

	if len(s.Authorities) > maxAuthorities {
		return nil, errors.New("too many authorities")
	}
	buf.WriteByte(byte(len(s.Authorities)))
	for _, authority := range s.Authorities {
		if err := writeString8(&buf, authority, "authority"); err != nil {
			return nil, err
		}
	}

	if err := writeString8(&buf, s.IP, "ip"); err != nil {
		return nil, err
	}
	if err := writeString8(&buf, s.Region, "region"); err != nil {
		return nil, err
	}
	if err := writeString8(&buf, s.OS, "os"); err != nil {
		return nil, err
	}
	if err := writeString8(&buf, s.Browser, "browser"); err != nil {
		return nil, err
	}
	if err := writeString8(&buf, s.Device, "device"); err != nil {
		return nil, err
	}

	if len(s.UserAgent) > 65535 {
		return nil, errors.New("userAgent too long")
	}
	if err := binary.Write(&buf, binary.BigEndian, uint16(len(s.UserAgent))); err != nil {
		return nil, err
	}
	buf.WriteString(s.UserAgent)

	if err := binary.Write(&buf, binary.BigEndian, s.LoginAt); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decode parses a blob produced by Encode.
func Decode(data []byte) (*Session, error) {
	reader := bytes.NewReader(data)

	version, err := reader.ReadByte()
	if err != nil {
		return nil, err
	}
	if version != sessionFormatVersionCurrent {
		return nil, errors.New("invalid session version")
	}

	s := &Session{}

	if s.UserID, err = readString8(reader); err != nil {
		return nil, err
	}
	if s.Username, err = readString8(reader); err != nil {
		return nil, err
	}
	if s.DeptID, err = readString8(reader); err != nil {
		return nil, err
	}

	authorityCount, err := reader.ReadByte()
	if err != nil {
		return nil, err
	}
	if authorityCount > 0 {
		s.Authorities = make([]string, 0, authorityCount)
		for i := 0; i < int(authorityCount); i++ {
			authority, err := readString8(reader)
			if err != nil {
				return nil, err
			}
			s.Authorities = append(s.Authorities, authority)
		}
	}

	if s.IP, err = readString8(reader); err != nil {
		return nil, err
	}
	if s.Region, err = readString8(reader); err != nil {
		return nil, err
	}
	if s.OS, err = readString8(reader); err != nil {
		return nil, err
	}
	if s.Browser, err = readString8(reader); err != nil {
		return nil, err
	}
	if s.Device, err = readString8(reader); err != nil {
		return nil, err
	}

	var userAgentLen uint16
	if err := binary.Read(reader, binary.BigEndian, &userAgentLen); err != nil {
		return nil, err
	}
	userAgent := make([]byte, userAgentLen)
	if _, err := io.ReadFull(reader, userAgent); err != nil {
		return nil, err
	}
	s.UserAgent = string(userAgent)

	if err := binary.Read(reader, binary.BigEndian, &s.LoginAt); err != nil {
		return nil, err
	}

	return s, nil
}

func writeString8(buf *bytes.Buffer, value, field string) error {
	if len(value) > 255 {
		return errors.New(field + " too long")
	}
	buf.WriteByte(byte(len(value)))
	buf.WriteString(value)
	return nil
}

func readString8(reader *bytes.Reader) (string, error) {
	length, err := reader.ReadByte()
	if err != nil {
		return "", err
	}
	value := make([]byte, length)
	if _, err := io.ReadFull(reader, value); err != nil {
		return "", err
	}
	return string(value), nil
}
