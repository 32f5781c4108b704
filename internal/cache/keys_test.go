package cache

import "testing"

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "without paramsKey",
			serviceName: "exam",
			objectType:  "report",
			identifier:  "01HTESTSESSION",
			paramsKey:   nil,
			expectedKey: "ieltsreading:exam:report:01HTESTSESSION",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "exam",
			objectType:  "report",
			identifier:  "01HTESTSESSION",
			paramsKey:   []string{},
			expectedKey: "ieltsreading:exam:report:01HTESTSESSION",
		},
		{
			name:        "with one paramsKey",
			serviceName: "package",
			objectType:  "summary",
			identifier:  "abc",
			paramsKey:   []string{"v2"},
			expectedKey: "ieltsreading:package:summary:abc:v2",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "package",
			objectType:  "list",
			identifier:  "all",
			paramsKey:   []string{"page1", "size20"},
			expectedKey: "ieltsreading:package:list:all:page1_size20",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actualKey := GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...)
			if actualKey != tt.expectedKey {
				t.Errorf("GenerateCacheKey() = %v, want %v", actualKey, tt.expectedKey)
			}
		})
	}
}
