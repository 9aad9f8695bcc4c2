package codec

// keyPool is the fixed table the obfuscation keys are sliced from. Peers
// must carry the identical table.
var keyPool = [KeyPoolSize]byte{
	0x41, 0x8f, 0x91, 0xd7, 0x44, 0x6b, 0xfe, 0x95, 0x6d, 0x19, 0xad, 0xb2,
	0x2b, 0xdf, 0xb4, 0xc4, 0xa3, 0xe2, 0xf8, 0x8b, 0x40, 0x20, 0x10, 0xa7,
	0x4b, 0xd8, 0x81, 0x6f, 0xc0, 0xec, 0xd9, 0xf1, 0xb7, 0xcc, 0xdb, 0x52,
	0x71, 0x77, 0x86, 0xc7, 0x48, 0x3e, 0x5f, 0xc5, 0xb9, 0x0d, 0x9e, 0xe8,
	0x13, 0x22, 0x04, 0xb2, 0x71, 0xd7, 0xfb, 0xbb, 0x5f, 0xe4, 0x6f, 0x3b,
	0x85, 0x64, 0xd5, 0x61, 0xb6, 0x8d, 0x87, 0x58, 0x76, 0xb6, 0x95, 0x17,
	0x55, 0xe4, 0xed, 0xb5, 0x04, 0xd8, 0x0b, 0x6d, 0x22, 0x2b, 0xb6, 0x45,
	0xb7, 0x22, 0x6b, 0x8e, 0x56, 0x1a, 0xab, 0x63, 0x19, 0x3a, 0xd2, 0x70,
	0x0f, 0x48, 0x06, 0x2c, 0x82, 0x54, 0x37, 0xc6, 0xc5, 0xfc, 0x88, 0x09,
	0x2e, 0xf3, 0x3b, 0xe1, 0x7c, 0xda, 0xe0, 0xb4, 0x36, 0x11, 0xed, 0x6a,
	0xf2, 0x55, 0xd0, 0xdd, 0xb6, 0x54, 0x53, 0xfb, 0x28, 0x71, 0x5d, 0x70,
	0x38, 0xe7, 0xa0, 0x22, 0xfc, 0x3e, 0xa8, 0x5c, 0x8e, 0x02, 0xb4, 0xa3,
	0xc9, 0x13, 0x01, 0x93, 0x4f, 0x69, 0xcc, 0x90, 0x2a, 0x59, 0xb8, 0x4b,
	0x8c, 0xb8, 0x0a, 0x66, 0xbf, 0x29, 0x2b, 0xbd, 0x05, 0x68, 0xf3, 0x9f,
	0x8e, 0x75, 0xce, 0x19, 0xae, 0x56, 0xd9, 0x90, 0xea, 0xbe, 0xd3, 0x7f,
	0x83, 0xf8, 0xc4, 0xb3, 0xd7, 0xb1, 0x06, 0xb6, 0x3f, 0x41, 0x13, 0xb4,
	0x94, 0xcd, 0xce, 0x4f, 0x8b, 0x92, 0x1f, 0x66, 0xe4, 0x12, 0xb3, 0xfd,
	0x44, 0x79, 0xd9, 0xbb, 0x2a, 0xfc, 0x84, 0x02, 0x2f, 0x16, 0xb5, 0x14,
	0x0c, 0x3a, 0x41, 0x8f, 0x83, 0x97, 0xe3, 0x71, 0xcf, 0x94, 0x6f, 0x6e,
	0x8e, 0x26, 0xf4, 0x77, 0x7b, 0x39, 0xd8, 0x44, 0x91, 0x91, 0x58, 0xab,
	0x4a, 0x04, 0x24, 0x8a, 0x3f, 0xb4, 0xf2, 0x7c, 0xfb, 0x0f, 0x4f, 0x5a,
	0xe4, 0x5e, 0xec, 0x8c, 0x00, 0x70, 0x96, 0x5c, 0xd4, 0x06, 0x39, 0xe0,
	0x43, 0xa2, 0x87, 0x23, 0x01, 0xe0, 0x39, 0x8e, 0xe2, 0xef, 0xd5, 0xef,
	0x77, 0x78, 0x88, 0xb1, 0xea, 0x23, 0xb3, 0x36, 0x43, 0x2e, 0x3c, 0x66,
	0x71, 0x75, 0x1f, 0xbe, 0xf6, 0x13, 0x57, 0x92, 0x0c, 0x0a, 0x4a, 0x28,
	0xae, 0xbf, 0xcd, 0x56, 0xb7, 0x00, 0x21, 0x4f, 0xf2, 0x19, 0xce, 0x75,
	0x60, 0xcd, 0x10, 0xae, 0x3a, 0x95, 0xe3, 0x12, 0x65, 0x25, 0x9b, 0x9f,
	0xdf, 0xf6, 0x06, 0xfc, 0x5b, 0xbf, 0xe8, 0x18, 0xd8, 0x15, 0x55, 0xf5,
	0x62, 0x9b, 0x04, 0x39, 0x9b, 0x6a, 0x93, 0x72, 0x08, 0xa5, 0xd3, 0x25,
	0x46, 0x21, 0x65, 0x1e, 0x22, 0xe4, 0x31, 0x73, 0xe7, 0x55, 0x79, 0xd1,
	0x74, 0x8c, 0xf5, 0x5c, 0x69, 0xf8, 0x9e, 0xff, 0xcc, 0x24, 0x2b, 0x44,
	0x09, 0x1a, 0x51, 0x02, 0xb5, 0x1d, 0x09, 0xb9, 0x56, 0x7b, 0x2d, 0xd9,
	0x1a, 0x05, 0xe1, 0x4d, 0x33, 0x57, 0x11, 0x24, 0x71, 0x21, 0xe8, 0xc5,
	0x9e, 0xdb, 0xbb, 0xcf, 0x9c, 0xa4, 0x30, 0xe5, 0xef, 0x9e, 0x91, 0x3e,
	0x0e, 0x20, 0x46, 0xb9, 0x02, 0x3a, 0xb2, 0x0a, 0xdd, 0x77, 0x8e, 0x73,
	0x21, 0x7a, 0x6d, 0x11, 0x8b, 0xa8, 0x97, 0xe8, 0x02, 0x40, 0xf5, 0xcb,
	0x18, 0x76, 0xaa, 0x0d, 0x9f, 0x0c, 0xdc, 0xcc, 0xa2, 0xda, 0xb1, 0x21,
	0x67, 0xe4, 0x53, 0x5b, 0x4e, 0x0b, 0x4e, 0x70, 0x09, 0xf0, 0x66, 0x74,
	0x19, 0x95, 0x37, 0xc2, 0x5a, 0x46, 0xd6, 0x49, 0xb2, 0xdc, 0x44, 0x3b,
	0x6c, 0x46, 0xa1, 0x82, 0xb3, 0xa9, 0x09, 0xe2, 0x98, 0xa9, 0x91, 0xf1,
	0x54, 0x90, 0x6e, 0x0c, 0x0c, 0x23, 0xef, 0xc1, 0x44, 0xc3, 0xa8, 0x2d,
	0xde, 0x88, 0x04, 0x00, 0x1b, 0x5e, 0xec, 0x14, 0xee, 0x38, 0x68, 0xb2,
	0x42, 0x34, 0x24, 0xe0, 0x3d, 0xd1, 0xbe, 0xc4, 0x21, 0x3b, 0x64, 0x7e,
	0x74, 0xde, 0x4c, 0xfc, 0x5c, 0x78, 0xdf, 0xc2, 0x1a, 0x35, 0xc7, 0x82,
	0x27, 0x1d, 0x31, 0x7b, 0xbe, 0x44, 0xb0, 0x73, 0xb8, 0xa5, 0xc5, 0x8f,
	0xf1, 0x13, 0xf6, 0xab, 0x5a, 0x51, 0x6c, 0xe6, 0x59, 0xd2, 0x3d, 0x5b,
	0x70, 0xa8, 0x8b, 0x35, 0xd9, 0x9b, 0x34, 0xd4, 0x13, 0xb1, 0xc8, 0xc5,
	0x8c, 0x09, 0x15, 0x7d, 0xf5, 0x28, 0xe6, 0x0f, 0xff, 0xbf, 0x2f, 0xb5,
	0x54, 0x2e, 0xab, 0x02, 0x8c, 0x88, 0x78, 0xc6, 0x2b, 0xd9, 0x9c, 0x9e,
	0x1b, 0xda, 0xd0, 0x88, 0xd5, 0x24, 0x95, 0x59, 0xeb, 0x2f, 0xf4, 0x6a,
	0x2a, 0xe8, 0xa2, 0xdc, 0xcb, 0x8e, 0x4f, 0xab, 0xbd, 0x79, 0xf3, 0x4b,
	0x28, 0x1b, 0x59, 0xc4, 0xf0, 0xad, 0xdc, 0xa7, 0x1a, 0x4d, 0x47, 0xe8,
	0x0b, 0xe8, 0xb8, 0xee, 0x83, 0x47, 0x73, 0x94, 0x4f, 0xd7, 0x22, 0x6a,
	0x1c, 0x50, 0x4d, 0x44, 0x46, 0xa0, 0x6b, 0x27, 0x97, 0x0e, 0x03, 0x79,
	0x4c, 0x85, 0xef, 0x25, 0x2a, 0xff, 0xfc, 0xc6, 0x63, 0x55, 0x9d, 0xf0,
	0x90, 0xe2, 0x35, 0x7b, 0x89, 0xa2, 0xf0, 0x62, 0xc6, 0xe5, 0x0a, 0xef,
	0xee, 0xf7, 0xae, 0x48, 0xc3, 0xbb, 0x12, 0x3d, 0x4c, 0x0f, 0x73, 0x63,
	0x2d, 0xef, 0x0f, 0x85, 0x1e, 0xe3, 0x23, 0x03, 0x62, 0x46, 0xf7, 0xbe,
	0x1d, 0x5b, 0x92, 0xb0, 0xf5, 0x6a, 0xb7, 0x7b, 0xd7, 0x3a, 0x34, 0xfe,
	0x54, 0xbe, 0x94, 0x92, 0x81, 0x8b, 0x61, 0x69, 0x9c, 0xd0, 0x23, 0xbb,
	0xb5, 0xd3, 0xb4, 0x4f, 0x17, 0xca, 0x30, 0xda, 0x15, 0x82, 0xe6, 0x76,
	0x3c, 0x83, 0x0e, 0xf2, 0x00, 0xfc, 0xdb, 0x3f, 0x53, 0xa2, 0xae, 0x0a,
	0x88, 0x86, 0x58, 0x5d, 0xc8, 0xfc, 0x6a, 0x40, 0x72, 0x36, 0x91, 0x2d,
	0x98, 0x73, 0x43, 0x6c, 0x8b, 0x9f, 0x35, 0xe3, 0x90, 0x68, 0x23, 0xb3,
	0xb5, 0x70, 0x11, 0x51, 0xaf, 0x8c, 0xbc, 0x7a, 0x03, 0xa7, 0x94, 0xfd,
	0x0d, 0x14, 0x26, 0x24, 0x87, 0xd6, 0x2c, 0x7c, 0x03, 0xca, 0x8c, 0xf5,
	0x86, 0x6b, 0xe5, 0x59, 0xd0, 0x73, 0x41, 0xb5, 0xb0, 0x9e, 0xf3, 0x85,
	0x47, 0x91, 0x40, 0x99, 0x65, 0x53, 0xe7, 0x83, 0x03, 0x96, 0x34, 0x83,
	0x51, 0x6e, 0x9d, 0xcd, 0xfe, 0x39, 0xd8, 0xa6, 0x26, 0x62, 0x09, 0xeb,
	0x04, 0x6a, 0xd8, 0x50, 0x81, 0x35, 0xfd, 0x8f, 0xd8, 0x9c, 0xb5, 0xda,
	0x23, 0x68, 0xd2, 0x9f, 0x15, 0xfe, 0x0c, 0x4e, 0x59, 0x9e, 0x7c, 0xaa,
	0xbd, 0xa0, 0xb2, 0x51, 0x62, 0x6e, 0xf3, 0xda, 0x71, 0x04, 0xd8, 0xb3,
	0xc7, 0x2d, 0xa7, 0x9f, 0xbf, 0xe4, 0xf3, 0x16, 0xf3, 0xe6, 0xc4, 0xe3,
	0xcf, 0xea, 0x78, 0x0c, 0xa5, 0xfd, 0xb3, 0x35, 0x13, 0x72, 0xf5, 0x21,
	0x73, 0x35, 0xc7, 0x40, 0x59, 0x50, 0xb9, 0xae, 0x23, 0x32, 0x06, 0x2d,
	0xfa, 0x9c, 0x42, 0x22, 0x24, 0x5a, 0x60, 0x1a, 0x2c, 0x06, 0xa8, 0x3a,
	0x87, 0x89, 0x9a, 0x26, 0x13, 0xd3, 0x0f, 0x11, 0x4f, 0xa0, 0x0b, 0x83,
	0xa7, 0x3d, 0x71, 0x07, 0x8a, 0x73, 0xc3, 0x66, 0xb2, 0xad, 0x91, 0x9c,
	0x93, 0xf5, 0x08, 0xd2, 0xde, 0x48, 0x7d, 0x74, 0x7a, 0xf7, 0x74, 0x53,
	0x8d, 0xdb, 0x1f, 0xde, 0x59, 0x4c, 0x46, 0x89, 0xb7, 0x5f, 0xb4, 0x3f,
	0x1a, 0x5a, 0x8d, 0x20, 0x67, 0x88, 0xae, 0xfa, 0xb6, 0x8d, 0x31, 0xf3,
	0xb9, 0xf6, 0x08, 0x55, 0x71, 0xd2, 0x4b, 0x58, 0x67, 0xab, 0x05, 0x10,
	0xaa, 0x2c, 0x0d, 0x9e, 0x50, 0x06, 0xa6, 0x51, 0xfb, 0x48, 0x31, 0x68,
	0xdb, 0xd4, 0x4f, 0xf1, 0x64, 0x50, 0x8a, 0x2a, 0x1d, 0x23, 0xda, 0x7e,
	0x47, 0x6f, 0xb1, 0x6f, 0x19, 0xdf, 0x79, 0xc1, 0xeb, 0x8e, 0x74, 0x77,
	0x8d, 0x62, 0x24, 0xed, 0x20, 0x3d, 0x48, 0x67, 0x3a, 0x7d, 0x08, 0xf3,
	0xe9, 0xb5, 0x25, 0xc7, 0x29, 0x92, 0x68, 0xb5, 0xf2, 0x8c, 0xab, 0x42,
	0xbb, 0x12, 0x3a, 0x0a, 0x85, 0x86, 0xe6, 0x62, 0x48, 0x20, 0x2d, 0x66,
	0xbc, 0xb8, 0x6d, 0x49, 0x71, 0x96, 0x35, 0x60, 0x83, 0x61, 0x3f, 0x70,
	0xdb, 0x68, 0x11, 0x81, 0x23, 0xdd, 0x9e, 0xc7, 0x44, 0x4a, 0x61, 0xdb,
	0xf1, 0xc2, 0x1f, 0x9d, 0xab, 0xd9, 0x32, 0x26, 0xd4, 0x00, 0x62, 0x45,
	0x35, 0xb6, 0x84, 0x6d, 0x19, 0x90, 0x42, 0x72, 0xe8, 0x18, 0x83, 0x02,
	0x7d, 0xb9, 0xd6, 0xb2, 0xcb, 0xa1, 0x04, 0xce, 0x49, 0x7c, 0x00, 0x52,
	0xf9, 0x51, 0x76, 0x7f, 0x34, 0xa7, 0x4a, 0xaf, 0x52, 0x7b, 0x69, 0xe6,
	0x0f, 0x31, 0x98, 0xe2, 0x87, 0x09, 0x46, 0xb4, 0xd0, 0x1b, 0x85, 0xfb,
	0x50, 0x21, 0x98, 0x9b, 0xfe, 0xd1, 0x7b, 0x44, 0x43, 0xfc, 0x39, 0x45,
	0x7b, 0xfb, 0x55, 0x39, 0xc7, 0x4c, 0x01, 0x62, 0x3d, 0x36, 0xf8, 0xa8,
	0x7f, 0x4b, 0xdd, 0x93, 0x31, 0xfe, 0xc0, 0x95, 0x1e, 0x78, 0x42, 0x91,
	0x6d, 0xda, 0xdb, 0x38, 0xb5, 0x54, 0xb3, 0x92, 0x40, 0x31, 0x70, 0x1f,
	0xc8, 0x22, 0x4f, 0xf5, 0xf2, 0x64, 0x50, 0xb7, 0x33, 0xc6, 0x99, 0x57,
	0x61, 0x2b, 0x4d, 0x9a, 0x10, 0xef, 0xa5, 0x90, 0x0e, 0x80, 0xbc, 0xe1,
}
